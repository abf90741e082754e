package vinted

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/go-resty/resty/v2"
)

const (
	desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	mobileUA  = "VintedMobileApp"
)

var errChallenge = errors.New("anti-bot challenge page")

// NewDefaultStrategies собирает лестницу api_v2, api_v1, profile_page, proxy.
// proxy пропускается, если VINTED_PROXY_URL пуст.
func NewDefaultStrategies(cfg *cfg.ImportCfg) []Strategy {
	client := resty.New().SetTimeout(cfg.StrategyTimeout)

	strategies := []Strategy{
		&apiStrategy{
			name:   "api_v2",
			client: client,
			url: func(p domain.MarketplaceProfile) string {
				return fmt.Sprintf("%s/api/v2/users/%s/items?page=1&per_page=20", cfg.BaseURL, p.MemberID)
			},
			headers: map[string]string{
				"User-Agent":       desktopUA,
				"Accept":           "application/json",
				"Referer":          cfg.BaseURL + "/",
				"X-Requested-With": "XMLHttpRequest",
			},
		},
		&apiStrategy{
			name:   "api_v1",
			client: client,
			url: func(p domain.MarketplaceProfile) string {
				return fmt.Sprintf("%s/api/v1/users/%s/items", cfg.BaseURL, p.MemberID)
			},
			headers: map[string]string{
				"User-Agent": mobileUA,
				"Accept":     "application/json",
			},
		},
		&profilePageStrategy{client: client},
	}

	if cfg.ProxyURL != "" {
		strategies = append(strategies, &proxyStrategy{client: client, proxyURL: cfg.ProxyURL})
	}

	return strategies
}

// apiStrategy читает JSON {items: [...]} из API площадки.
type apiStrategy struct {
	name    string
	client  *resty.Client
	url     func(domain.MarketplaceProfile) string
	headers map[string]string
}

func (s *apiStrategy) Name() string { return s.name }

func (s *apiStrategy) Attempt(ctx context.Context, profile domain.MarketplaceProfile) Result {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeaders(s.headers).
		Get(s.url(profile))
	if err != nil {
		return Failed(fmt.Errorf("%s request: %w", s.name, err), false)
	}
	if res, bad := checkResponse(s.name, resp); bad {
		return res
	}

	items, err := decodeItems(bytes.NewReader(resp.Body()))
	if err != nil {
		if looksLikeChallenge(resp.String()) {
			return Failed(fmt.Errorf("%s: %w", s.name, errChallenge), true)
		}
		return Failed(fmt.Errorf("%s decode: %w", s.name, err), false)
	}

	return Items(normalizeItems(items))
}

// profilePageStrategy скачивает HTML страницы профиля.
type profilePageStrategy struct {
	client *resty.Client
}

func (s *profilePageStrategy) Name() string { return "profile_page" }

func (s *profilePageStrategy) Attempt(ctx context.Context, profile domain.MarketplaceProfile) Result {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"User-Agent":      desktopUA,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "fr-FR,fr;q=0.9,en;q=0.8",
		}).
		Get(profile.URL)
	if err != nil {
		return Failed(fmt.Errorf("%s request: %w", s.Name(), err), false)
	}
	if res, bad := checkResponse(s.Name(), resp); bad {
		return res
	}

	return fromHTML(s.Name(), resp.String())
}

// proxyStrategy запрашивает страницу профиля через прокси в формате allorigins: {"contents": "<html>"}.
type proxyStrategy struct {
	client   *resty.Client
	proxyURL string
}

func (s *proxyStrategy) Name() string { return "proxy" }

func (s *proxyStrategy) Attempt(ctx context.Context, profile domain.MarketplaceProfile) Result {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("url", profile.URL).
		Get(s.proxyURL)
	if err != nil {
		return Failed(fmt.Errorf("%s request: %w", s.Name(), err), false)
	}
	if res, bad := checkResponse(s.Name(), resp); bad {
		return res
	}

	var payload struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return Failed(fmt.Errorf("%s decode: %w", s.Name(), err), false)
	}

	return fromHTML(s.Name(), payload.Contents)
}

func fromHTML(name, body string) Result {
	if listings := extractFromHTML(body); len(listings) > 0 {
		return Items(listings)
	}
	if looksLikeChallenge(body) {
		return Failed(fmt.Errorf("%s: %w", name, errChallenge), true)
	}

	return Empty()
}

// checkResponse возвращает bad == true для неуспешного статуса.
// 401, 403 и 429 считаются блокировкой, как и страница с антибот-проверкой.
func checkResponse(name string, resp *resty.Response) (Result, bool) {
	if resp.IsSuccess() {
		return Result{}, false
	}

	code := resp.StatusCode()
	blocked := code == http.StatusUnauthorized ||
		code == http.StatusForbidden ||
		code == http.StatusTooManyRequests ||
		looksLikeChallenge(resp.String())

	return Failed(fmt.Errorf("%s: HTTP %d", name, code), blocked), true
}
