package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/domain"
)

type mockArticleRepo struct {
	CreateFunc       func(ctx context.Context, article *domain.Article) (*domain.Article, error)
	CreateBatchFunc  func(ctx context.Context, articles []*domain.Article) ([]*domain.Article, error)
	ListFunc         func(ctx context.Context) ([]*domain.Article, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.Article, error)
	GetForUpdateFunc func(ctx context.Context, id int64) (*domain.Article, error)
	UpdateFunc       func(ctx context.Context, id int64, patch *domain.ArticlePatch) (*domain.Article, error)
	MarkSoldFunc     func(ctx context.Context, id int64) (*domain.Article, error)
	SetGeneratedFunc func(ctx context.Context, id int64, listing *domain.GeneratedListing) (*domain.Article, error)
	DeleteFunc       func(ctx context.Context, id int64) (*string, error)
}

func (m *mockArticleRepo) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	return m.CreateFunc(ctx, article)
}

func (m *mockArticleRepo) CreateBatch(ctx context.Context, articles []*domain.Article) ([]*domain.Article, error) {
	return m.CreateBatchFunc(ctx, articles)
}

func (m *mockArticleRepo) List(ctx context.Context) ([]*domain.Article, error) {
	return m.ListFunc(ctx)
}

func (m *mockArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockArticleRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Article, error) {
	return m.GetForUpdateFunc(ctx, id)
}

func (m *mockArticleRepo) Update(ctx context.Context, id int64, patch *domain.ArticlePatch) (*domain.Article, error) {
	return m.UpdateFunc(ctx, id, patch)
}

func (m *mockArticleRepo) MarkSold(ctx context.Context, id int64) (*domain.Article, error) {
	return m.MarkSoldFunc(ctx, id)
}

func (m *mockArticleRepo) SetGenerated(ctx context.Context, id int64, listing *domain.GeneratedListing) (*domain.Article, error) {
	return m.SetGeneratedFunc(ctx, id, listing)
}

func (m *mockArticleRepo) Delete(ctx context.Context, id int64) (*string, error) {
	return m.DeleteFunc(ctx, id)
}

type mockSaleRepo struct {
	CreateFunc func(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	ListFunc   func(ctx context.Context) ([]*domain.Sale, error)
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	return m.CreateFunc(ctx, sale)
}

func (m *mockSaleRepo) List(ctx context.Context) ([]*domain.Sale, error) {
	return m.ListFunc(ctx)
}

type mockConversationRepo struct {
	CreateFunc          func(ctx context.Context, c *domain.Conversation) (*domain.Conversation, error)
	UpdateResponsesFunc func(ctx context.Context, id int64, responses []string) (*domain.Conversation, error)
	ListRecentFunc      func(ctx context.Context, limit int) ([]*domain.Conversation, error)
}

func (m *mockConversationRepo) Create(ctx context.Context, c *domain.Conversation) (*domain.Conversation, error) {
	return m.CreateFunc(ctx, c)
}

func (m *mockConversationRepo) UpdateResponses(ctx context.Context, id int64, responses []string) (*domain.Conversation, error) {
	return m.UpdateResponsesFunc(ctx, id, responses)
}

func (m *mockConversationRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Conversation, error) {
	return m.ListRecentFunc(ctx, limit)
}

type mockStatsRepo struct {
	AggregateFunc func(ctx context.Context, monthStart time.Time) (*domain.StatsAggregate, error)
}

func (m *mockStatsRepo) Aggregate(ctx context.Context, monthStart time.Time) (*domain.StatsAggregate, error) {
	return m.AggregateFunc(ctx, monthStart)
}

// mockOutboxRepo запоминает созданные события.
type mockOutboxRepo struct {
	Events    []*OutboxEvent
	CreateErr error
}

func (m *mockOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	event.ID = int64(len(m.Events) + 1)
	m.Events = append(m.Events, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(context.Context, int64) error { return nil }

type mockImagesInfra struct {
	UploadImageFunc func(ctx context.Context, image *ArticleImage) (string, error)
	OpenImageFunc   func(ctx context.Context, key string) (*ImageObject, error)
	CleanedUp       []string
}

func (m *mockImagesInfra) UploadImage(ctx context.Context, image *ArticleImage) (string, error) {
	return m.UploadImageFunc(ctx, image)
}

func (m *mockImagesInfra) OpenImage(ctx context.Context, key string) (*ImageObject, error) {
	return m.OpenImageFunc(ctx, key)
}

func (m *mockImagesInfra) CleanupImages(keys []string) {
	m.CleanedUp = append(m.CleanedUp, keys...)
}

type mockGenerator struct {
	GenerateListingFunc func(ctx context.Context, prompt *ListingPrompt) (*domain.GeneratedListing, error)
	GenerateRepliesFunc func(ctx context.Context, message string) ([]domain.CustomerReply, error)
	Calls               int
}

func (m *mockGenerator) GenerateListing(ctx context.Context, prompt *ListingPrompt) (*domain.GeneratedListing, error) {
	m.Calls++
	return m.GenerateListingFunc(ctx, prompt)
}

func (m *mockGenerator) GenerateReplies(ctx context.Context, message string) ([]domain.CustomerReply, error) {
	m.Calls++
	return m.GenerateRepliesFunc(ctx, message)
}

type mockScraper struct {
	FetchListingsFunc func(ctx context.Context, profile domain.MarketplaceProfile) ([]domain.Listing, error)
	Calls             int
}

func (m *mockScraper) FetchListings(ctx context.Context, profile domain.MarketplaceProfile) ([]domain.Listing, error) {
	m.Calls++
	return m.FetchListingsFunc(ctx, profile)
}

// mockListingCache: кэш в памяти с опциональными ошибками.
type mockListingCache struct {
	Data   map[string][]domain.Listing
	GetErr error
	SetErr error
}

func (m *mockListingCache) GetListings(_ context.Context, memberID string) ([]domain.Listing, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	l, ok := m.Data[memberID]
	return l, ok, nil
}

func (m *mockListingCache) SetListings(_ context.Context, memberID string, listings []domain.Listing) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Data == nil {
		m.Data = map[string][]domain.Listing{}
	}
	m.Data[memberID] = listings
	return nil
}

// passTx выполняет fn без реальной транзакции.
type passTx struct {
	Calls int
}

func (p *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p.Calls++
	return fn(ctx)
}
