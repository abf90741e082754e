package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfileURL = "https://www.vinted.fr/member/123456-seller"

func sampleListings() []domain.Listing {
	return []domain.Listing{
		domain.NewListing("Pull Ralph Lauren", "35.00", "M", "Ralph Lauren", "https://images.vinted.net/1.jpg"),
		domain.NewListing("Jean 501", "20.50", "", "", "https://images.vinted.net/2.jpg"),
	}
}

func batchEcho(_ context.Context, articles []*domain.Article) ([]*domain.Article, error) {
	for i, a := range articles {
		a.ID = int64(i + 1)
	}
	return articles, nil
}

func TestImportUseCase_ImportProfile_PersistsListings(t *testing.T) {
	scraper := &mockScraper{
		FetchListingsFunc: func(_ context.Context, p domain.MarketplaceProfile) ([]domain.Listing, error) {
			assert.Equal(t, "123456", p.MemberID)
			return sampleListings(), nil
		},
	}
	cache := &mockListingCache{}
	outbox := &mockOutboxRepo{}
	tx := &passTx{}
	uc := NewImportUC(scraper, cache, &mockArticleRepo{CreateBatchFunc: batchEcho}, outbox, tx, logger.Nop{})

	res, err := uc.ImportProfile(context.Background(), &ImportReq{ProfileURL: testProfileURL})
	require.NoError(t, err)

	assert.Equal(t, 2, res.ImportedCount)
	assert.False(t, res.FromCache)
	require.Len(t, res.Articles, 2)

	a := res.Articles[1]
	assert.Equal(t, "Jean 501", a.Name)
	assert.Equal(t, domain.DefaultListingBrand, a.Brand)
	assert.Equal(t, domain.DefaultListingSize, a.Size)
	assert.Equal(t, "20.50", a.Price.StringFixed(2))
	assert.True(t, a.PurchasePrice.IsZero())
	assert.Equal(t, domain.StatusUnsold, a.Status)
	require.NotNil(t, a.ImageURL)
	assert.Equal(t, "https://images.vinted.net/2.jpg", *a.ImageURL)

	assert.Equal(t, 1, tx.Calls)
	require.Len(t, outbox.Events, 1)
	assert.Equal(t, EventArticlesImported, outbox.Events[0].EventType)
	assert.Len(t, cache.Data["123456"], 2)
}

func TestImportUseCase_ImportProfile_DryRunDoesNotPersist(t *testing.T) {
	scraper := &mockScraper{
		FetchListingsFunc: func(context.Context, domain.MarketplaceProfile) ([]domain.Listing, error) {
			return sampleListings(), nil
		},
	}
	articles := &mockArticleRepo{
		CreateBatchFunc: func(context.Context, []*domain.Article) ([]*domain.Article, error) {
			t.Fatal("dry run must not insert")
			return nil, nil
		},
	}
	uc := NewImportUC(scraper, &mockListingCache{}, articles, &mockOutboxRepo{}, &passTx{}, logger.Nop{})

	res, err := uc.ImportProfile(context.Background(), &ImportReq{ProfileURL: testProfileURL, DryRun: true})
	require.NoError(t, err)
	assert.Len(t, res.Listings, 2)
	assert.Zero(t, res.ImportedCount)
}

func TestImportUseCase_ImportProfile_UsesCache(t *testing.T) {
	scraper := &mockScraper{}
	cache := &mockListingCache{Data: map[string][]domain.Listing{"123456": sampleListings()}}
	uc := NewImportUC(scraper, cache, &mockArticleRepo{}, &mockOutboxRepo{}, &passTx{}, logger.Nop{})

	res, err := uc.ImportProfile(context.Background(), &ImportReq{ProfileURL: testProfileURL, DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Zero(t, scraper.Calls)
}

func TestImportUseCase_ImportProfile_CacheErrorsAreSoft(t *testing.T) {
	scraper := &mockScraper{
		FetchListingsFunc: func(context.Context, domain.MarketplaceProfile) ([]domain.Listing, error) {
			return sampleListings(), nil
		},
	}
	cache := &mockListingCache{GetErr: errors.New("redis down"), SetErr: errors.New("redis down")}
	uc := NewImportUC(scraper, cache, &mockArticleRepo{}, &mockOutboxRepo{}, &passTx{}, logger.Nop{})

	res, err := uc.ImportProfile(context.Background(), &ImportReq{ProfileURL: testProfileURL, DryRun: true})
	require.NoError(t, err)
	assert.Len(t, res.Listings, 2)
	assert.Equal(t, 1, scraper.Calls)
}

func TestImportUseCase_ImportProfile_FailureIsNotCached(t *testing.T) {
	scraper := &mockScraper{
		FetchListingsFunc: func(context.Context, domain.MarketplaceProfile) ([]domain.Listing, error) {
			return nil, fmt.Errorf("ladder: %w", e.ErrImportBlocked)
		},
	}
	cache := &mockListingCache{}
	uc := NewImportUC(scraper, cache, &mockArticleRepo{}, &mockOutboxRepo{}, &passTx{}, logger.Nop{})

	_, err := uc.ImportProfile(context.Background(), &ImportReq{ProfileURL: testProfileURL})
	require.ErrorIs(t, err, e.ErrImportBlocked)
	assert.Empty(t, cache.Data)
}

func TestImportUseCase_ImportProfile_InvalidURL(t *testing.T) {
	scraper := &mockScraper{}
	uc := NewImportUC(scraper, &mockListingCache{}, &mockArticleRepo{}, &mockOutboxRepo{}, &passTx{}, logger.Nop{})

	for _, raw := range []string{"", "not a url", "ftp://vinted.fr/member/1", "https://www.vinted.fr/catalog", "http://169.254.169.254/member/1"} {
		_, err := uc.ImportProfile(context.Background(), &ImportReq{ProfileURL: raw})
		require.ErrorIs(t, err, e.ErrValidation, raw)
	}
	assert.Zero(t, scraper.Calls)
}
