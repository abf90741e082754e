package usecase

import (
	"context"

	"github.com/DRSN-tech/resale-backend/internal/domain"
)

type ArticleUC interface {
	Create(ctx context.Context, req *CreateArticleReq) (*domain.Article, error)
	List(ctx context.Context) ([]*domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	Update(ctx context.Context, id int64, req *UpdateArticleReq) (*domain.Article, error)
	MarkSold(ctx context.Context, id int64) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
	OpenImage(ctx context.Context, key string) (*ImageObject, error)
}

type SaleUC interface {
	Record(ctx context.Context, req *RecordSaleReq) (*domain.Sale, error)
	List(ctx context.Context) ([]*domain.Sale, error)
}

type StatsUC interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type AssistantUC interface {
	GenerateDescription(ctx context.Context, req *GenerateDescriptionReq) (*domain.GeneratedListing, error)
	GenerateResponses(ctx context.Context, customerMessage string) ([]domain.CustomerReply, error)
	ListConversations(ctx context.Context, limit int) ([]*domain.Conversation, error)
}

type ImportUC interface {
	ImportProfile(ctx context.Context, req *ImportReq) (*ImportRes, error)
}
