package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/infrastructure"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/jitter"
	"github.com/DRSN-tech/resale-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	keyPrefix       = "articles"
	cleanupAttempts = 3
	cleanupTimeout  = 30 * time.Second
)

// MinioInfrastructure управляет загрузкой, выдачей и фоновой очисткой фотографий в MinIO.
type MinioInfrastructure struct {
	minioRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	backoffBase time.Duration
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo:   minioRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		backoffBase: time.Second,
	}
}

// UploadImage сохраняет фото под ключом articles/<uuid>.<ext> и возвращает ключ.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, image *usecase.ArticleImage) (string, error) {
	const op = "MinioInfrastructure.UploadImage"

	if m.cfg.UploadMaxSize > 0 && int64(len(image.Data)) > m.cfg.UploadMaxSize {
		return "", e.Wrap(op, e.ErrFileTooLarge)
	}

	ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
	if err != nil {
		return "", fmt.Errorf("%s: invalid mime type %s for %s: %w", op, image.MimeType, image.Name, err)
	}

	objKey := fmt.Sprintf("%s/%s.%s", keyPrefix, uuid.NewString(), ext)
	key, err := m.minioRepo.Upload(ctx, domain.NewImage(m.cfg.BucketName, objKey, image.Data, image.MimeType))
	if err != nil {
		return "", fmt.Errorf("%s: upload %s failed: %w", op, image.Name, err)
	}

	return key, nil
}

// OpenImage открывает поток фото по ключу.
func (m *MinioInfrastructure) OpenImage(ctx context.Context, key string) (*usecase.ImageObject, error) {
	const op = "MinioInfrastructure.OpenImage"

	obj, err := m.minioRepo.Get(ctx, key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return obj, nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupKeys(keys)
}

// cleanupKeys удаляет объекты с экспоненциальной задержкой и jitter между попытками.
func (m *MinioInfrastructure) cleanupKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupKeys"
	m.logger.Debugf("%s: removing %d objects", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.minioRepo.Delete(ctx, key)
			if err == nil {
				break
			}

			if ctx.Err() != nil {
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key=%s", op, key)
				break
			}

			select {
			case <-time.After(jitter.ExponentialBackoff(m.backoffBase, 8*m.backoffBase, attempt, jitter.DefaultJitter)):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
