package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticleUC(repo *mockArticleRepo, outbox *mockOutboxRepo, images *mockImagesInfra) *ArticleUseCase {
	return NewArticleUC(repo, outbox, &passTx{}, images, logger.Nop{})
}

func validCreateReq() *CreateArticleReq {
	return &CreateArticleReq{
		Name:          "Veste en jean",
		Brand:         "Levi's",
		Size:          "M",
		Price:         decimal.RequireFromString("45.00"),
		PurchasePrice: decimal.RequireFromString("15.00"),
	}
}

func TestArticleUseCase_Create(t *testing.T) {
	t.Run("defaults status to unsold", func(t *testing.T) {
		repo := &mockArticleRepo{
			CreateFunc: func(_ context.Context, a *domain.Article) (*domain.Article, error) {
				a.ID = 1
				return a, nil
			},
		}
		uc := newArticleUC(repo, &mockOutboxRepo{}, &mockImagesInfra{})

		got, err := uc.Create(context.Background(), validCreateReq())
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, domain.StatusUnsold, got.Status)
		assert.Nil(t, got.ImageURL)
		assert.Nil(t, got.Comment)
	})

	t.Run("missing name is a field error", func(t *testing.T) {
		uc := newArticleUC(&mockArticleRepo{}, &mockOutboxRepo{}, &mockImagesInfra{})

		req := validCreateReq()
		req.Name = "  "
		_, err := uc.Create(context.Background(), req)
		require.ErrorIs(t, err, e.ErrValidation)

		v, ok := e.AsValidation(err)
		require.True(t, ok)
		require.Len(t, v.Fields, 1)
		assert.Equal(t, "name", v.Fields[0].Field)
	})

	t.Run("stores uploaded image url", func(t *testing.T) {
		repo := &mockArticleRepo{
			CreateFunc: func(_ context.Context, a *domain.Article) (*domain.Article, error) { return a, nil },
		}
		images := &mockImagesInfra{
			UploadImageFunc: func(context.Context, *ArticleImage) (string, error) { return "articles/a.jpg", nil },
		}
		uc := newArticleUC(repo, &mockOutboxRepo{}, images)

		req := validCreateReq()
		req.Image = NewArticleImage([]byte{0xff, 0xd8}, "image/jpeg", "a.jpg")
		got, err := uc.Create(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, got.ImageURL)
		assert.Equal(t, "/uploads/articles/a.jpg", *got.ImageURL)
		assert.Empty(t, images.CleanedUp)
	})

	t.Run("cleans up image when insert fails", func(t *testing.T) {
		repo := &mockArticleRepo{
			CreateFunc: func(context.Context, *domain.Article) (*domain.Article, error) { return nil, errors.New("db down") },
		}
		images := &mockImagesInfra{
			UploadImageFunc: func(context.Context, *ArticleImage) (string, error) { return "articles/b.png", nil },
		}
		uc := newArticleUC(repo, &mockOutboxRepo{}, images)

		req := validCreateReq()
		req.Image = NewArticleImage([]byte{0x89, 0x50}, "image/png", "b.png")
		_, err := uc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, []string{"articles/b.png"}, images.CleanedUp)
	})
}

func TestArticleUseCase_MarkSold(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("flips status and writes event", func(t *testing.T) {
		repo := &mockArticleRepo{
			GetForUpdateFunc: func(_ context.Context, id int64) (*domain.Article, error) {
				return &domain.Article{ID: id, Status: domain.StatusUnsold, UpdatedAt: created}, nil
			},
			MarkSoldFunc: func(_ context.Context, id int64) (*domain.Article, error) {
				return &domain.Article{ID: id, Status: domain.StatusSold, UpdatedAt: created.Add(time.Hour)}, nil
			},
		}
		outbox := &mockOutboxRepo{}
		uc := newArticleUC(repo, outbox, &mockImagesInfra{})

		got, err := uc.MarkSold(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSold, got.Status)
		assert.True(t, got.UpdatedAt.After(created))

		require.Len(t, outbox.Events, 1)
		assert.Equal(t, EventArticleSold, outbox.Events[0].EventType)
		require.NotNil(t, outbox.Events[0].ArticleID)
		assert.Equal(t, int64(7), *outbox.Events[0].ArticleID)

		payload, err := DecodeEventPayload(outbox.Events[0].Payload)
		require.NoError(t, err)
		assert.Equal(t, "article_sold", payload["event_type"])
		assert.Equal(t, float64(7), payload["article_id"])
	})

	t.Run("already sold is a no-op", func(t *testing.T) {
		repo := &mockArticleRepo{
			GetForUpdateFunc: func(_ context.Context, id int64) (*domain.Article, error) {
				return &domain.Article{ID: id, Status: domain.StatusSold, UpdatedAt: created}, nil
			},
			MarkSoldFunc: func(context.Context, int64) (*domain.Article, error) {
				t.Fatal("MarkSold must not be called")
				return nil, nil
			},
		}
		outbox := &mockOutboxRepo{}
		uc := newArticleUC(repo, outbox, &mockImagesInfra{})

		got, err := uc.MarkSold(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, created, got.UpdatedAt)
		assert.Empty(t, outbox.Events)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockArticleRepo{
			GetForUpdateFunc: func(context.Context, int64) (*domain.Article, error) { return nil, e.ErrArticleNotFound },
		}
		uc := newArticleUC(repo, &mockOutboxRepo{}, &mockImagesInfra{})

		_, err := uc.MarkSold(context.Background(), 404)
		require.ErrorIs(t, err, e.ErrArticleNotFound)
	})
}

func TestArticleUseCase_Update(t *testing.T) {
	oldURL := "/uploads/articles/old.jpg"
	sold := domain.StatusSold

	repo := &mockArticleRepo{
		GetForUpdateFunc: func(_ context.Context, id int64) (*domain.Article, error) {
			return &domain.Article{ID: id, Status: domain.StatusUnsold, ImageURL: &oldURL}, nil
		},
		UpdateFunc: func(_ context.Context, id int64, p *domain.ArticlePatch) (*domain.Article, error) {
			return &domain.Article{ID: id, Status: *p.Status, ImageURL: p.ImageURL}, nil
		},
	}
	images := &mockImagesInfra{
		UploadImageFunc: func(context.Context, *ArticleImage) (string, error) { return "articles/new.jpg", nil },
	}
	outbox := &mockOutboxRepo{}
	uc := newArticleUC(repo, outbox, images)

	got, err := uc.Update(context.Background(), 3, &UpdateArticleReq{
		Patch: domain.ArticlePatch{Status: &sold},
		Image: NewArticleImage([]byte{1}, "image/jpeg", "new.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSold, got.Status)
	assert.Equal(t, "/uploads/articles/new.jpg", *got.ImageURL)
	assert.Equal(t, []string{"articles/old.jpg"}, images.CleanedUp)
	require.Len(t, outbox.Events, 1)
	assert.Equal(t, EventArticleSold, outbox.Events[0].EventType)
}

func TestArticleUseCase_Update_InvalidStatus(t *testing.T) {
	bad := domain.ArticleStatus("gone")
	uc := newArticleUC(&mockArticleRepo{}, &mockOutboxRepo{}, &mockImagesInfra{})

	_, err := uc.Update(context.Background(), 1, &UpdateArticleReq{Patch: domain.ArticlePatch{Status: &bad}})
	require.ErrorIs(t, err, e.ErrValidation)
}

func TestArticleUseCase_Delete(t *testing.T) {
	t.Run("removes stored image", func(t *testing.T) {
		url := "/uploads/articles/x.webp"
		repo := &mockArticleRepo{
			DeleteFunc: func(context.Context, int64) (*string, error) { return &url, nil },
		}
		images := &mockImagesInfra{}
		uc := newArticleUC(repo, &mockOutboxRepo{}, images)

		require.NoError(t, uc.Delete(context.Background(), 1))
		assert.Equal(t, []string{"articles/x.webp"}, images.CleanedUp)
	})

	t.Run("keeps remote image", func(t *testing.T) {
		url := "https://images.vinted.net/t/abc.jpg"
		repo := &mockArticleRepo{
			DeleteFunc: func(context.Context, int64) (*string, error) { return &url, nil },
		}
		images := &mockImagesInfra{}
		uc := newArticleUC(repo, &mockOutboxRepo{}, images)

		require.NoError(t, uc.Delete(context.Background(), 1))
		assert.Empty(t, images.CleanedUp)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockArticleRepo{
			DeleteFunc: func(context.Context, int64) (*string, error) { return nil, e.ErrArticleNotFound },
		}
		uc := newArticleUC(repo, &mockOutboxRepo{}, &mockImagesInfra{})

		require.ErrorIs(t, uc.Delete(context.Background(), 1), e.ErrArticleNotFound)
	})
}

func TestArticleUseCase_OpenImage_RejectsTraversal(t *testing.T) {
	uc := newArticleUC(&mockArticleRepo{}, &mockOutboxRepo{}, &mockImagesInfra{})

	_, err := uc.OpenImage(context.Background(), "../secrets")
	require.ErrorIs(t, err, e.ErrImageNotFound)
}
