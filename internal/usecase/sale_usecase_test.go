package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleUseCase_Record(t *testing.T) {
	tests := []struct {
		name          string
		purchasePrice string
		status        domain.ArticleStatus
		wantCoeff     string
		wantMarkSold  bool
	}{
		{name: "with purchase price", purchasePrice: "20.00", status: domain.StatusUnsold, wantCoeff: "2.25", wantMarkSold: true},
		{name: "free purchase has no coefficient", purchasePrice: "0", status: domain.StatusUnsold, wantMarkSold: true},
		{name: "already sold article", purchasePrice: "30.00", status: domain.StatusSold, wantCoeff: "1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markSoldCalled := false
			articles := &mockArticleRepo{
				GetForUpdateFunc: func(_ context.Context, id int64) (*domain.Article, error) {
					return &domain.Article{ID: id, Status: tt.status, PurchasePrice: decimal.RequireFromString(tt.purchasePrice)}, nil
				},
				MarkSoldFunc: func(_ context.Context, id int64) (*domain.Article, error) {
					markSoldCalled = true
					return &domain.Article{ID: id, Status: domain.StatusSold}, nil
				},
			}
			sales := &mockSaleRepo{
				CreateFunc: func(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
					s.ID = 11
					return s, nil
				},
			}
			outbox := &mockOutboxRepo{}
			uc := NewSaleUC(sales, articles, outbox, &passTx{}, logger.Nop{})

			sale, err := uc.Record(context.Background(), &RecordSaleReq{ArticleID: 5, SalePrice: decimal.RequireFromString("45.00")})
			require.NoError(t, err)

			if tt.wantCoeff == "" {
				assert.Nil(t, sale.Coefficient)
			} else {
				require.NotNil(t, sale.Coefficient)
				assert.Equal(t, tt.wantCoeff, sale.Coefficient.StringFixed(2))
			}
			assert.Equal(t, tt.wantMarkSold, markSoldCalled)
			require.Len(t, outbox.Events, 1)
			assert.Equal(t, EventSaleRecorded, outbox.Events[0].EventType)
		})
	}
}

func TestSaleUseCase_Record_ArticleNotFound(t *testing.T) {
	articles := &mockArticleRepo{
		GetForUpdateFunc: func(context.Context, int64) (*domain.Article, error) { return nil, e.ErrArticleNotFound },
	}
	uc := NewSaleUC(&mockSaleRepo{}, articles, &mockOutboxRepo{}, &passTx{}, logger.Nop{})

	_, err := uc.Record(context.Background(), &RecordSaleReq{ArticleID: 9, SalePrice: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, e.ErrArticleNotFound)
}

func TestSaleUseCase_Record_Validation(t *testing.T) {
	uc := NewSaleUC(&mockSaleRepo{}, &mockArticleRepo{}, &mockOutboxRepo{}, &passTx{}, logger.Nop{})

	_, err := uc.Record(context.Background(), &RecordSaleReq{ArticleID: 0, SalePrice: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, e.ErrValidation)

	_, err = uc.Record(context.Background(), &RecordSaleReq{ArticleID: 1, SalePrice: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, e.ErrValidation)
}
