package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale: запись о продаже артикула. Coefficient == nil, если цена закупки была нулевой.
type Sale struct {
	ID          int64
	ArticleID   int64
	SalePrice   decimal.Decimal
	SaleDate    time.Time
	Coefficient *decimal.Decimal
}

func NewSale(articleID int64, salePrice, purchasePrice decimal.Decimal) *Sale {
	s := &Sale{
		ArticleID: articleID,
		SalePrice: salePrice,
	}
	if c, ok := Coefficient(salePrice, purchasePrice); ok {
		s.Coefficient = &c
	}

	return s
}
