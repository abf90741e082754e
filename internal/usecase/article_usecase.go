package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

// ArticleUseCase реализует бизнес-логику управления артикулами.
type ArticleUseCase struct {
	articleRepo ArticleRepository
	outboxRepo  OutboxRepository
	txManager   TxManager
	imagesInfra ImagesInfra
	logger      logger.Logger
}

func NewArticleUC(
	articleRepo ArticleRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	imagesInfra ImagesInfra,
	logger logger.Logger,
) *ArticleUseCase {
	return &ArticleUseCase{
		articleRepo: articleRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		imagesInfra: imagesInfra,
		logger:      logger,
	}
}

// Create сохраняет новый артикул. Фото загружается до вставки и удаляется, если вставка не удалась.
func (a *ArticleUseCase) Create(ctx context.Context, req *CreateArticleReq) (*domain.Article, error) {
	const op = "ArticleUseCase.Create"

	if err := validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	article := domain.NewArticle(
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Brand),
		strings.TrimSpace(req.Size),
		req.Price,
		req.PurchasePrice,
		req.Status,
	)
	if c := strings.TrimSpace(req.Comment); c != "" {
		article.Comment = &c
	}

	var uploadedKey string
	if req.Image != nil {
		key, err := a.imagesInfra.UploadImage(ctx, req.Image)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		uploadedKey = key
		url := domain.ImageURL(key)
		article.ImageURL = &url
	}

	created, err := a.articleRepo.Create(ctx, article)
	if err != nil {
		if uploadedKey != "" {
			a.logger.Warnf("Cleaning up orphaned image after insert failure. name: %s, error: %v", article.Name, e.Wrap(op, err))
			a.imagesInfra.CleanupImages([]string{uploadedKey})
		}
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

func (a *ArticleUseCase) List(ctx context.Context) ([]*domain.Article, error) {
	const op = "ArticleUseCase.List"

	articles, err := a.articleRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return articles, nil
}

func (a *ArticleUseCase) Get(ctx context.Context, id int64) (*domain.Article, error) {
	const op = "ArticleUseCase.Get"

	article, err := a.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return article, nil
}

// Update применяет частичное обновление. При переходе в sold пишет событие article_sold в той же транзакции.
func (a *ArticleUseCase) Update(ctx context.Context, id int64, req *UpdateArticleReq) (*domain.Article, error) {
	const op = "ArticleUseCase.Update"

	patch := req.Patch
	if err := validatePatch(&patch); err != nil {
		return nil, e.Wrap(op, err)
	}

	var newKey string
	if req.Image != nil {
		key, err := a.imagesInfra.UploadImage(ctx, req.Image)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		newKey = key
		url := domain.ImageURL(key)
		patch.ImageURL = &url
	}

	var (
		updated *domain.Article
		oldURL  *string
	)
	err := a.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := a.articleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		oldURL = current.ImageURL

		if patch.Empty() {
			updated = current
			return nil
		}

		updated, err = a.articleRepo.Update(ctx, id, &patch)
		if err != nil {
			return err
		}

		if patch.MarksSold() && current.Status != domain.StatusSold {
			return a.writeSoldEvent(ctx, updated)
		}

		return nil
	})
	if err != nil {
		if newKey != "" {
			a.imagesInfra.CleanupImages([]string{newKey})
		}
		return nil, e.Wrap(op, err)
	}

	if newKey != "" && oldURL != nil {
		if oldKey, ok := domain.ObjectKeyFromURL(*oldURL); ok && oldKey != newKey {
			a.imagesInfra.CleanupImages([]string{oldKey})
		}
	}

	return updated, nil
}

// MarkSold переводит артикул в статус sold и обновляет updated_at.
// Уже проданный артикул возвращается без изменений, чтобы не сдвигать дату продажи.
func (a *ArticleUseCase) MarkSold(ctx context.Context, id int64) (*domain.Article, error) {
	const op = "ArticleUseCase.MarkSold"

	var article *domain.Article
	err := a.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := a.articleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if current.Status == domain.StatusSold {
			article = current
			return nil
		}

		article, err = a.articleRepo.MarkSold(ctx, id)
		if err != nil {
			return err
		}

		return a.writeSoldEvent(ctx, article)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return article, nil
}

// Delete удаляет артикул и в фоне удаляет его фото из хранилища.
func (a *ArticleUseCase) Delete(ctx context.Context, id int64) error {
	const op = "ArticleUseCase.Delete"

	imageURL, err := a.articleRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	if imageURL != nil {
		if key, ok := domain.ObjectKeyFromURL(*imageURL); ok {
			a.imagesInfra.CleanupImages([]string{key})
		}
	}

	return nil
}

func (a *ArticleUseCase) OpenImage(ctx context.Context, key string) (*ImageObject, error) {
	const op = "ArticleUseCase.OpenImage"

	if strings.TrimSpace(key) == "" || strings.Contains(key, "..") {
		return nil, e.Wrap(op, e.ErrImageNotFound)
	}

	obj, err := a.imagesInfra.OpenImage(ctx, key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return obj, nil
}

func (a *ArticleUseCase) writeSoldEvent(ctx context.Context, article *domain.Article) error {
	event, err := newOutboxEvent(EventArticleSold, &article.ID, map[string]any{
		"article_id":     article.ID,
		"price":          article.Price.StringFixed(2),
		"purchase_price": article.PurchasePrice.StringFixed(2),
	})
	if err != nil {
		return err
	}

	_, err = a.outboxRepo.Create(ctx, event)
	return err
}

// validateCreate проверяет корректность входных данных запроса на создание артикула.
func validateCreate(req *CreateArticleReq) error {
	var fields []e.FieldError

	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, e.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(req.Brand) == "" {
		fields = append(fields, e.FieldError{Field: "brand", Message: "brand is required"})
	}
	if strings.TrimSpace(req.Size) == "" {
		fields = append(fields, e.FieldError{Field: "size", Message: "size is required"})
	}
	if req.Price.IsNegative() {
		fields = append(fields, e.FieldError{Field: "price", Message: e.ErrInvalidPrice.Error()})
	}
	if req.PurchasePrice.IsNegative() {
		fields = append(fields, e.FieldError{Field: "purchasePrice", Message: e.ErrInvalidPrice.Error()})
	}
	if req.Status != "" && !req.Status.Valid() {
		fields = append(fields, e.FieldError{Field: "status", Message: "status must be one of sold, unsold, pending"})
	}

	if len(fields) > 0 {
		return e.NewValidationError(fields...)
	}

	return nil
}

func validatePatch(p *domain.ArticlePatch) error {
	var fields []e.FieldError

	for field, v := range map[string]*string{"name": p.Name, "brand": p.Brand, "size": p.Size} {
		if v != nil && strings.TrimSpace(*v) == "" {
			fields = append(fields, e.FieldError{Field: field, Message: field + " must not be empty"})
		}
	}
	if p.Price != nil && p.Price.IsNegative() {
		fields = append(fields, e.FieldError{Field: "price", Message: e.ErrInvalidPrice.Error()})
	}
	if p.PurchasePrice != nil && p.PurchasePrice.IsNegative() {
		fields = append(fields, e.FieldError{Field: "purchasePrice", Message: e.ErrInvalidPrice.Error()})
	}
	if p.Status != nil && !p.Status.Valid() {
		fields = append(fields, e.FieldError{Field: "status", Message: "status must be one of sold, unsold, pending"})
	}

	if len(fields) > 0 {
		return e.NewValidationError(fields...)
	}

	return nil
}
