package domain

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/DRSN-tech/resale-backend/pkg/e"
)

var (
	memberIDRe = regexp.MustCompile(`/member/(\d+)`)
	// vinted.fr, www.vinted.de, vinted.co.uk
	vintedHostRe = regexp.MustCompile(`^(?:[a-z0-9-]+\.)*vinted\.(?:[a-z]{2,3}|co\.uk)$`)
)

// MarketplaceProfile: публичный профиль продавца на внешней площадке.
type MarketplaceProfile struct {
	URL      string
	MemberID string
}

// ParseProfileURL проверяет URL профиля и извлекает из него идентификатор продавца.
func ParseProfileURL(raw string) (MarketplaceProfile, error) {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return MarketplaceProfile{}, e.NewFieldError("profileUrl", e.ErrInvalidProfileURL.Error())
	}

	// URL профиля запрашивается с сервера, поэтому принимаются только хосты площадки
	if !vintedHostRe.MatchString(strings.ToLower(u.Hostname())) || u.Port() != "" || u.User != nil {
		return MarketplaceProfile{}, e.NewFieldError("profileUrl", "profile url must point to vinted")
	}

	m := memberIDRe.FindStringSubmatch(u.Path)
	if m == nil {
		return MarketplaceProfile{}, e.NewFieldError("profileUrl", "member id not found in profile url")
	}

	return MarketplaceProfile{URL: raw, MemberID: m[1]}, nil
}
