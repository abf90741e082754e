package usecase

import (
	"context"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

// SaleUseCase ведёт журнал продаж.
type SaleUseCase struct {
	saleRepo    SaleRepository
	articleRepo ArticleRepository
	outboxRepo  OutboxRepository
	txManager   TxManager
	logger      logger.Logger
}

func NewSaleUC(
	saleRepo SaleRepository,
	articleRepo ArticleRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	logger logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		saleRepo:    saleRepo,
		articleRepo: articleRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Record записывает продажу, переводит артикул в sold и пишет событие sale_recorded.
func (s *SaleUseCase) Record(ctx context.Context, req *RecordSaleReq) (*domain.Sale, error) {
	const op = "SaleUseCase.Record"

	if req.ArticleID <= 0 {
		return nil, e.Wrap(op, e.NewFieldError("articleId", "articleId must be a positive integer"))
	}
	if req.SalePrice.IsNegative() {
		return nil, e.Wrap(op, e.NewFieldError("salePrice", e.ErrInvalidPrice.Error()))
	}

	var sale *domain.Sale
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		article, err := s.articleRepo.GetForUpdate(ctx, req.ArticleID)
		if err != nil {
			return err
		}

		sale, err = s.saleRepo.Create(ctx, domain.NewSale(article.ID, req.SalePrice, article.PurchasePrice))
		if err != nil {
			return err
		}

		if article.Status != domain.StatusSold {
			if _, err := s.articleRepo.MarkSold(ctx, article.ID); err != nil {
				return err
			}
		}

		fields := map[string]any{
			"sale_id":    sale.ID,
			"article_id": article.ID,
			"sale_price": sale.SalePrice.StringFixed(2),
		}
		if sale.Coefficient != nil {
			fields["coefficient"] = sale.Coefficient.StringFixed(2)
		}

		event, err := newOutboxEvent(EventSaleRecorded, &article.ID, fields)
		if err != nil {
			return err
		}

		_, err = s.outboxRepo.Create(ctx, event)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sale, nil
}

func (s *SaleUseCase) List(ctx context.Context) ([]*domain.Sale, error) {
	const op = "SaleUseCase.List"

	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sales, nil
}
