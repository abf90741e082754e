package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const noSuchKey = "NoSuchKey"

// ImageRepo реализует репозиторий фотографий артикулов поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает изображение в MinIO и возвращает ключ объекта.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	reader := bytes.NewReader(image.Data)

	info, err := i.mc.PutObject(ctx, i.bucket(image), image.ObjectKey, reader, image.Size, minio.PutObjectOptions{
		ContentType: image.ContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Get открывает поток объекта. Отсутствующий ключ даёт e.ErrImageNotFound.
func (i *ImageRepo) Get(ctx context.Context, key string) (*usecase.ImageObject, error) {
	obj, err := i.mc.GetObject(ctx, i.cfg.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, i.wrapNotFound(err)
	}

	// GetObject ленивый: ошибка отсутствия объекта приходит только из Stat
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, i.wrapNotFound(err)
	}

	return &usecase.ImageObject{
		Body:        obj,
		ContentType: stat.ContentType,
		Size:        stat.Size,
	}, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (i *ImageRepo) bucket(image *domain.Image) string {
	if image.Bucket != "" {
		return image.Bucket
	}
	return i.cfg.BucketName
}

func (i *ImageRepo) wrapNotFound(err error) error {
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrImageNotFound)
	}
	return e.Wrap(whereami.WhereAmI(), err)
}
