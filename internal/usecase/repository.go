package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/domain"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	CreateBatch(ctx context.Context, articles []*domain.Article) ([]*domain.Article, error)
	List(ctx context.Context) ([]*domain.Article, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	// GetForUpdate блокирует строку до конца транзакции из ctx.
	GetForUpdate(ctx context.Context, id int64) (*domain.Article, error)
	Update(ctx context.Context, id int64, patch *domain.ArticlePatch) (*domain.Article, error)
	MarkSold(ctx context.Context, id int64) (*domain.Article, error)
	SetGenerated(ctx context.Context, id int64, listing *domain.GeneratedListing) (*domain.Article, error)
	// Delete удаляет артикул и возвращает его image_url (может быть nil).
	Delete(ctx context.Context, id int64) (*string, error)
}

type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	List(ctx context.Context) ([]*domain.Sale, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) (*domain.Conversation, error)
	UpdateResponses(ctx context.Context, id int64, responses []string) (*domain.Conversation, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Conversation, error)
}

type StatsRepository interface {
	Aggregate(ctx context.Context, monthStart time.Time) (*domain.StatsAggregate, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Get(ctx context.Context, key string) (*ImageObject, error)
	Delete(ctx context.Context, key string) error
}

type ListingCacheRepository interface {
	// GetListings возвращает ok == false при промахе кэша.
	GetListings(ctx context.Context, memberID string) ([]domain.Listing, bool, error)
	SetListings(ctx context.Context, memberID string, listings []domain.Listing) error
}
