package vinted

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiItems = `{"items":[
 {"title":"Sweat Nike","price":{"amount":"18.00","currency_code":"EUR"},"size_title":"L","brand_title":"Nike",
  "photos":[{"url":"https://img/s.jpg","high_resolution":{"url":"https://img/s-hr.jpg"}}]},
 {"title":"Sans photo","price":"5","photos":[]}
]}`

func strategyByName(t *testing.T, strategies []Strategy, name string) Strategy {
	t.Helper()
	for _, s := range strategies {
		if s.Name() == name {
			return s
		}
	}
	t.Fatalf("strategy %s not found", name)
	return nil
}

func importCfg(base, proxy string) *cfg.ImportCfg {
	return &cfg.ImportCfg{BaseURL: base, ProxyURL: proxy, StrategyTimeout: 2 * time.Second}
}

func TestDefaultStrategies_Order(t *testing.T) {
	names := func(ss []Strategy) []string {
		out := make([]string, 0, len(ss))
		for _, s := range ss {
			out = append(out, s.Name())
		}
		return out
	}

	assert.Equal(t, []string{"api_v2", "api_v1", "profile_page", "proxy"}, names(NewDefaultStrategies(importCfg("http://x", "http://p"))))
	assert.Equal(t, []string{"api_v2", "api_v1", "profile_page"}, names(NewDefaultStrategies(importCfg("http://x", ""))))
}

func TestAPIv2Strategy_ParsesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/users/42/items", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(apiItems))
	}))
	defer srv.Close()

	s := strategyByName(t, NewDefaultStrategies(importCfg(srv.URL, "")), "api_v2")
	res := s.Attempt(context.Background(), domain.MarketplaceProfile{URL: srv.URL + "/member/42", MemberID: "42"})

	require.Equal(t, OutcomeItems, res.Outcome)
	require.Len(t, res.Listings, 1)
	assert.Equal(t, domain.Listing{
		Title: "Sweat Nike", Price: "18.00", Size: "L", Brand: "Nike", ImageURL: "https://img/s-hr.jpg",
	}, res.Listings[0])
}

func TestAPIStrategy_BlockedStatuses(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		s := strategyByName(t, NewDefaultStrategies(importCfg(srv.URL, "")), "api_v1")
		res := s.Attempt(context.Background(), domain.MarketplaceProfile{MemberID: "42"})
		srv.Close()

		assert.Equal(t, OutcomeFailed, res.Outcome, code)
		assert.True(t, res.Blocked, code)
	}
}

func TestAPIStrategy_ServerErrorIsNotBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := strategyByName(t, NewDefaultStrategies(importCfg(srv.URL, "")), "api_v2")
	res := s.Attempt(context.Background(), domain.MarketplaceProfile{MemberID: "42"})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.False(t, res.Blocked)
}

func TestProfilePageStrategy_ChallengePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="cf-challenge"></div></body></html>`))
	}))
	defer srv.Close()

	s := strategyByName(t, NewDefaultStrategies(importCfg(srv.URL, "")), "profile_page")
	res := s.Attempt(context.Background(), domain.MarketplaceProfile{URL: srv.URL + "/member/42", MemberID: "42"})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.True(t, res.Blocked)
}

func TestProxyStrategy_ReadsContents(t *testing.T) {
	profileURL := "https://www.vinted.fr/member/42"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, profileURL, r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contents":` + jsonString(cardsPage) + `}`))
	}))
	defer srv.Close()

	s := strategyByName(t, NewDefaultStrategies(importCfg("http://unused", srv.URL+"/get")), "proxy")
	res := s.Attempt(context.Background(), domain.MarketplaceProfile{URL: profileURL, MemberID: "42"})

	require.Equal(t, OutcomeItems, res.Outcome)
	assert.Len(t, res.Listings, 2)
}

// Сценарий: все стратегии заблокированы, итог: одна ошибка с ErrImportBlocked.
func TestLadder_AllStrategiesBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := importCfg(srv.URL, srv.URL+"/get")
	l := NewLadder(NewDefaultStrategies(c), c, logger.Nop{})

	profile := domain.MarketplaceProfile{URL: srv.URL + "/member/42-user", MemberID: "42"}

	_, err := l.FetchListings(context.Background(), profile)
	require.ErrorIs(t, err, e.ErrImportBlocked)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Len(t, exhausted.Attempts, 4)
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
