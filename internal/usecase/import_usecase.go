package usecase

import (
	"context"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// ImportUseCase импортирует объявления из публичного профиля площадки в сток.
type ImportUseCase struct {
	scraper     ListingScraper
	cacheRepo   ListingCacheRepository
	articleRepo ArticleRepository
	outboxRepo  OutboxRepository
	txManager   TxManager
	logger      logger.Logger
}

func NewImportUC(
	scraper ListingScraper,
	cacheRepo ListingCacheRepository,
	articleRepo ArticleRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	logger logger.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		scraper:     scraper,
		cacheRepo:   cacheRepo,
		articleRepo: articleRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ImportProfile получает объявления профиля (из кэша или площадки) и, если это не DryRun, сохраняет их как артикулы.
func (i *ImportUseCase) ImportProfile(ctx context.Context, req *ImportReq) (*ImportRes, error) {
	const op = "ImportUseCase.ImportProfile"

	profile, err := domain.ParseProfileURL(req.ProfileURL)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	listings, fromCache, err := i.fetchListings(ctx, profile)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.DryRun {
		return NewImportRes(listings, nil, fromCache), nil
	}

	articles, err := i.persist(ctx, profile, listings)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.logger.Infof("Imported %d articles from member %s", len(articles), profile.MemberID)
	return NewImportRes(listings, articles, fromCache), nil
}

func (i *ImportUseCase) fetchListings(ctx context.Context, profile domain.MarketplaceProfile) ([]domain.Listing, bool, error) {
	const op = "ImportUseCase.fetchListings"

	cached, ok, err := i.cacheRepo.GetListings(ctx, profile.MemberID)
	if err != nil {
		i.logger.Warnf("Failed to read listings cache: %v", e.Wrap(op, err))
	} else if ok {
		return cached, true, nil
	}

	listings, err := i.scraper.FetchListings(ctx, profile)
	if err != nil {
		return nil, false, e.Wrap(op, err)
	}

	if err := i.cacheRepo.SetListings(ctx, profile.MemberID, listings); err != nil {
		i.logger.Warnf("Failed to cache listings: %v", e.Wrap(op, err))
	}

	return listings, false, nil
}

func (i *ImportUseCase) persist(ctx context.Context, profile domain.MarketplaceProfile, listings []domain.Listing) ([]*domain.Article, error) {
	const op = "ImportUseCase.persist"

	batch := make([]*domain.Article, 0, len(listings))
	for _, l := range listings {
		price, err := decimal.NewFromString(l.Price)
		if err != nil {
			price = decimal.Zero
		}

		article := domain.NewArticle(l.Title, l.Brand, l.Size, price, decimal.Zero, domain.StatusUnsold)
		if l.ImageURL != "" {
			url := l.ImageURL
			article.ImageURL = &url
		}
		batch = append(batch, article)
	}

	var created []*domain.Article
	err := i.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = i.articleRepo.CreateBatch(ctx, batch)
		if err != nil {
			return err
		}

		ids := make([]any, 0, len(created))
		for _, a := range created {
			ids = append(ids, a.ID)
		}

		event, err := newOutboxEvent(EventArticlesImported, nil, map[string]any{
			"member_id":      profile.MemberID,
			"profile_url":    profile.URL,
			"imported_count": len(created),
			"article_ids":    ids,
		})
		if err != nil {
			return err
		}

		_, err = i.outboxRepo.Create(ctx, event)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}
