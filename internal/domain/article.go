package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleStatus: статус артикула на площадке.
type ArticleStatus string

const (
	StatusSold    ArticleStatus = "sold"
	StatusUnsold  ArticleStatus = "unsold"
	StatusPending ArticleStatus = "pending"
)

func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusSold, StatusUnsold, StatusPending:
		return true
	default:
		return false
	}
}

// Article описывает одну позицию в стоке реселлера
type Article struct {
	ID                   int64
	Name                 string
	Brand                string
	Size                 string
	Price                decimal.Decimal // цена продажи
	PurchasePrice        decimal.Decimal // цена закупки
	Status               ArticleStatus
	ImageURL             *string
	Comment              *string
	GeneratedTitle       *string
	GeneratedDescription *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func NewArticle(name, brand, size string, price, purchasePrice decimal.Decimal, status ArticleStatus) *Article {
	if status == "" {
		status = StatusUnsold
	}

	return &Article{
		Name:          name,
		Brand:         brand,
		Size:          size,
		Price:         price,
		PurchasePrice: purchasePrice,
		Status:        status,
	}
}

// Coefficient возвращает price / purchasePrice. ok == false, если цена закупки нулевая.
func (a *Article) Coefficient() (decimal.Decimal, bool) {
	return Coefficient(a.Price, a.PurchasePrice)
}

// ArticlePatch: частичное обновление артикула. nil-поля не меняются.
type ArticlePatch struct {
	Name          *string
	Brand         *string
	Size          *string
	Price         *decimal.Decimal
	PurchasePrice *decimal.Decimal
	Status        *ArticleStatus
	Comment       *string
	ImageURL      *string
}

// Empty сообщает, что патч ничего не меняет.
func (p *ArticlePatch) Empty() bool {
	return p.Name == nil && p.Brand == nil && p.Size == nil && p.Price == nil &&
		p.PurchasePrice == nil && p.Status == nil && p.Comment == nil && p.ImageURL == nil
}

// MarksSold: патч переводит артикул в статус sold.
func (p *ArticlePatch) MarksSold() bool {
	return p.Status != nil && *p.Status == StatusSold
}

// Coefficient считает коэффициент прибыльности sale / purchase, округлённый до сотых.
func Coefficient(sale, purchase decimal.Decimal) (decimal.Decimal, bool) {
	if purchase.IsZero() {
		return decimal.Zero, false
	}

	return sale.Div(purchase).Round(2), true
}
