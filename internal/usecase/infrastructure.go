package usecase

import (
	"context"

	"github.com/DRSN-tech/resale-backend/internal/domain"
)

type ImagesInfra interface {
	UploadImage(ctx context.Context, image *ArticleImage) (string, error)
	OpenImage(ctx context.Context, key string) (*ImageObject, error)
	CleanupImages(keys []string)
}

// ContentGenerator: внешний генеративный AI.
type ContentGenerator interface {
	GenerateListing(ctx context.Context, prompt *ListingPrompt) (*domain.GeneratedListing, error)
	GenerateReplies(ctx context.Context, customerMessage string) ([]domain.CustomerReply, error)
}

// ListingScraper получает объявления публичного профиля внешней площадки.
type ListingScraper interface {
	FetchListings(ctx context.Context, profile domain.MarketplaceProfile) ([]domain.Listing, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// TxManager выполняет fn в одной транзакции БД.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
