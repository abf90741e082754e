package usecase

import (
	"io"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ARTICLE USECASE

// CreateArticleReq: запрос на создание артикула.
type CreateArticleReq struct {
	Name          string
	Brand         string
	Size          string
	Price         decimal.Decimal
	PurchasePrice decimal.Decimal
	Status        domain.ArticleStatus
	Comment       string
	Image         *ArticleImage
}

// UpdateArticleReq: частичное обновление, опционально с новым фото.
type UpdateArticleReq struct {
	Patch domain.ArticlePatch
	Image *ArticleImage
}

// ArticleImage представляет изображение, загруженное через multipart/form-data.
type ArticleImage struct {
	Data     []byte // байты изображения
	MimeType string // определённый по содержимому Content-Type
	Name     string // оригинальное имя файла (для логов)
}

// ImageObject: поток объекта из хранилища. Body закрывает вызывающий.
type ImageObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// SALE USECASE

type RecordSaleReq struct {
	ArticleID int64
	SalePrice decimal.Decimal
}

// ASSISTANT USECASE

type GenerateDescriptionReq struct {
	Image     *ArticleImage
	Price     string
	Size      string
	Brand     string
	Comment   string
	ArticleID *int64
}

// ListingPrompt: данные для генерации объявления.
type ListingPrompt struct {
	Image    []byte
	MimeType string
	Price    string
	Size     string
	Brand    string
	Comment  string
}

// IMPORT USECASE

type ImportReq struct {
	ProfileURL string
	DryRun     bool
}

type ImportRes struct {
	Listings      []domain.Listing
	Articles      []*domain.Article
	ImportedCount int
	FromCache     bool
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventArticleSold      OutboxEventType = "article_sold"
	EventSaleRecorded     OutboxEventType = "sale_recorded"
	EventArticlesImported OutboxEventType = "articles_imported"
)

// OutboxEvent: событие, записанное в одной транзакции с изменением состояния.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ArticleID   *int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTUCTURE

type WriteRawMessageReq struct {
	Key       string
	EventType OutboxEventType
	Payload   []byte
}

// MAPPERS

func NewImportRes(listings []domain.Listing, articles []*domain.Article, fromCache bool) *ImportRes {
	return &ImportRes{
		Listings:      listings,
		Articles:      articles,
		ImportedCount: len(articles),
		FromCache:     fromCache,
	}
}

func NewListingPrompt(req *GenerateDescriptionReq) *ListingPrompt {
	return &ListingPrompt{
		Image:    req.Image.Data,
		MimeType: req.Image.MimeType,
		Price:    req.Price,
		Size:     req.Size,
		Brand:    req.Brand,
		Comment:  req.Comment,
	}
}

func NewWriteRawMessageReq(key string, eventType OutboxEventType, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       key,
		EventType: eventType,
		Payload:   payload,
	}
}

func NewArticleImage(data []byte, mimeType string, name string) *ArticleImage {
	return &ArticleImage{
		Data:     data,
		MimeType: mimeType,
		Name:     name,
	}
}
