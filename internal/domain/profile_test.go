package domain_test

import (
	"testing"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		member  string
		wantErr bool
	}{
		{name: "member url", raw: "https://www.vinted.fr/member/12345-jane", member: "12345"},
		{name: "member url with spaces", raw: "  https://www.vinted.fr/member/987  ", member: "987"},
		{name: "no member id", raw: "https://www.vinted.fr/catalog", wantErr: true},
		{name: "not a url", raw: "vinted member 1", wantErr: true},
		{name: "unsupported scheme", raw: "ftp://www.vinted.fr/member/1", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "other tld", raw: "https://vinted.co.uk/member/77", member: "77"},
		{name: "upper case host", raw: "https://WWW.Vinted.DE/member/5", member: "5"},
		{name: "metadata address", raw: "http://169.254.169.254/member/1", wantErr: true},
		{name: "localhost", raw: "http://localhost/member/1", wantErr: true},
		{name: "lookalike host", raw: "https://vinted.fr.evil.com/member/1", wantErr: true},
		{name: "vinted as subdomain", raw: "https://vinted.evil.com/member/1", wantErr: true},
		{name: "explicit port", raw: "https://www.vinted.fr:8443/member/1", wantErr: true},
		{name: "userinfo", raw: "https://user@www.vinted.fr/member/1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := domain.ParseProfileURL(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, e.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.member, p.MemberID)
		})
	}
}

func TestNewListing_Defaults(t *testing.T) {
	l := domain.NewListing("Jean", "12.00", "", "", "https://img")
	assert.Equal(t, domain.DefaultListingSize, l.Size)
	assert.Equal(t, domain.DefaultListingBrand, l.Brand)
}

func TestObjectKeyFromURL(t *testing.T) {
	key, ok := domain.ObjectKeyFromURL(domain.ImageURL("articles/a.jpg"))
	assert.True(t, ok)
	assert.Equal(t, "articles/a.jpg", key)

	_, ok = domain.ObjectKeyFromURL("https://images.vinted.net/a.jpg")
	assert.False(t, ok)
}
