package http

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
)

// flexString принимает в JSON и строку, и число: "12.50" и 12.5 равнозначны.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// REQUESTS

type createArticleRequest struct {
	Name          string     `json:"name" validate:"required,max=255"`
	Brand         string     `json:"brand" validate:"required,max=255"`
	Size          string     `json:"size" validate:"required,max=64"`
	Price         flexString `json:"price" validate:"required"`
	PurchasePrice flexString `json:"purchasePrice"`
	Status        string     `json:"status" validate:"omitempty,oneof=sold unsold pending"`
	Comment       string     `json:"comment" validate:"max=2000"`
}

type updateArticleRequest struct {
	Name          *string     `json:"name" validate:"omitempty,max=255"`
	Brand         *string     `json:"brand" validate:"omitempty,max=255"`
	Size          *string     `json:"size" validate:"omitempty,max=64"`
	Price         *flexString `json:"price"`
	PurchasePrice *flexString `json:"purchasePrice"`
	Status        *string     `json:"status" validate:"omitempty,oneof=sold unsold pending"`
	Comment       *string     `json:"comment" validate:"omitempty,max=2000"`
}

type recordSaleRequest struct {
	ArticleID int64      `json:"articleId" validate:"required,gt=0"`
	SalePrice flexString `json:"salePrice" validate:"required"`
}

type generateResponsesRequest struct {
	CustomerMessage string `json:"customerMessage" validate:"required,max=4000"`
}

type importRequest struct {
	ProfileURL string `json:"profileUrl" validate:"required,url"`
	DryRun     bool   `json:"dryRun"`
}

// RESPONSES

type ArticleResponse struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Brand                string    `json:"brand"`
	Size                 string    `json:"size"`
	Price                string    `json:"price"`
	PurchasePrice        string    `json:"purchasePrice"`
	Status               string    `json:"status"`
	ImageURL             *string   `json:"imageUrl"`
	Comment              *string   `json:"comment"`
	GeneratedTitle       *string   `json:"generatedTitle"`
	GeneratedDescription *string   `json:"generatedDescription"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type SaleResponse struct {
	ID          int64     `json:"id"`
	ArticleID   int64     `json:"articleId"`
	SalePrice   string    `json:"salePrice"`
	SaleDate    time.Time `json:"saleDate"`
	Coefficient *string   `json:"coefficient"`
}

type DashboardStatsResponse struct {
	TotalArticles        int64  `json:"totalArticles"`
	MonthlyItemsSold     int64  `json:"monthlyItemsSold"`
	MonthlyRevenue       string `json:"monthlyRevenue"`
	MonthlyMargin        string `json:"monthlyMargin"`
	TotalItemsSold       int64  `json:"totalItemsSold"`
	TotalRevenue         string `json:"totalRevenue"`
	TotalMargin          string `json:"totalMargin"`
	AverageCoefficient   string `json:"averageCoefficient"`
	AverageMarginPercent string `json:"averageMarginPercent"`
}

type GeneratedListingResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ReplyVariant struct {
	Tone string `json:"tone"`
	Text string `json:"text"`
}

type RepliesResponse struct {
	Responses []string       `json:"responses"`
	Variants  []ReplyVariant `json:"variants"`
}

type ConversationResponse struct {
	ID                 int64     `json:"id"`
	CustomerMessage    string    `json:"customerMessage"`
	GeneratedResponses []string  `json:"generatedResponses"`
	CreatedAt          time.Time `json:"createdAt"`
}

type ImportResponse struct {
	ImportedCount int               `json:"importedCount"`
	Articles      []ArticleResponse `json:"articles,omitempty"`
	Listings      []domain.Listing  `json:"listings"`
	FromCache     bool              `json:"fromCache"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PingResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// MAPPERS

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:                   a.ID,
		Name:                 a.Name,
		Brand:                a.Brand,
		Size:                 a.Size,
		Price:                a.Price.StringFixed(2),
		PurchasePrice:        a.PurchasePrice.StringFixed(2),
		Status:               string(a.Status),
		ImageURL:             a.ImageURL,
		Comment:              a.Comment,
		GeneratedTitle:       a.GeneratedTitle,
		GeneratedDescription: a.GeneratedDescription,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func toArticleResponses(articles []*domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}

	return out
}

func toSaleResponse(s *domain.Sale) SaleResponse {
	res := SaleResponse{
		ID:        s.ID,
		ArticleID: s.ArticleID,
		SalePrice: s.SalePrice.StringFixed(2),
		SaleDate:  s.SaleDate,
	}
	if s.Coefficient != nil {
		c := s.Coefficient.StringFixed(2)
		res.Coefficient = &c
	}

	return res
}

func toSaleResponses(sales []*domain.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}

	return out
}

func toDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalArticles:        s.TotalArticles,
		MonthlyItemsSold:     s.MonthlyItemsSold,
		MonthlyRevenue:       s.MonthlyRevenue,
		MonthlyMargin:        s.MonthlyMargin,
		TotalItemsSold:       s.TotalItemsSold,
		TotalRevenue:         s.TotalRevenue,
		TotalMargin:          s.TotalMargin,
		AverageCoefficient:   s.AverageCoefficient,
		AverageMarginPercent: s.AverageMarginPercent,
	}
}

func toRepliesResponse(replies []domain.CustomerReply) RepliesResponse {
	res := RepliesResponse{
		Responses: domain.ReplyTexts(replies),
		Variants:  make([]ReplyVariant, 0, len(replies)),
	}
	for _, r := range replies {
		res.Variants = append(res.Variants, ReplyVariant{Tone: string(r.Tone), Text: r.Text})
	}

	return res
}

func toConversationResponses(conversations []*domain.Conversation) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		responses := c.GeneratedResponses
		if responses == nil {
			responses = []string{}
		}
		out = append(out, ConversationResponse{
			ID:                 c.ID,
			CustomerMessage:    c.CustomerMessage,
			GeneratedResponses: responses,
			CreatedAt:          c.CreatedAt,
		})
	}

	return out
}

func toImportResponse(res *usecase.ImportRes) ImportResponse {
	listings := res.Listings
	if listings == nil {
		listings = []domain.Listing{}
	}

	out := ImportResponse{
		ImportedCount: res.ImportedCount,
		Listings:      listings,
		FromCache:     res.FromCache,
	}
	if len(res.Articles) > 0 {
		out.Articles = toArticleResponses(res.Articles)
	}

	return out
}
