package minio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/infrastructure"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/jitter"
	"github.com/DRSN-tech/autovarka/pkg/logger"

	"github.com/google/uuid"
)

const (
	// Префикс ключей изображений товаров в бакете
	productsPrefix = "products/"
	// Заглушка, которую админка подставляет вместо отсутствующего фото
	placeholderImage = "/placeholder.svg"

	cleanupAttempts = 3
	cleanupTimeout  = 30 * time.Second
)

// MinioInfrastructure управляет загрузкой и фоновым удалением изображений в MinIO.
type MinioInfrastructure struct {
	minioRepo    usecase.ImageRepository
	bucket       string
	publicURL    string
	maxImageSize int64
	logger       logger.Logger
	shutdownCtx  context.Context
	wg           sync.WaitGroup

	// Базовая задержка между попытками удаления
	cleanupBackoff time.Duration
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo:      minioRepo,
		bucket:         cfg.BucketName,
		publicURL:      strings.TrimRight(cfg.PublicURL, "/"),
		maxImageSize:   cfg.MaxImageSize,
		logger:         logger,
		shutdownCtx:    shutdownCtx,
		cleanupBackoff: time.Second,
	}
}

// UploadImage проверяет тип и размер изображения и загружает его под ключом products/<uuid>.<ext>.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	const op = "MinioInfrastructure.UploadImage"

	ext, err := infrastructure.GetExtensionFromMIME(req.MimeType)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("mime type %q of %s: %w", req.MimeType, req.Name, err))
	}

	size := req.Size
	if size <= 0 {
		size = int64(len(req.Data))
	}
	if size > m.maxImageSize {
		return nil, e.Wrap(op, fmt.Errorf("%s is %d bytes, limit %d: %w", req.Name, size, m.maxImageSize, e.ErrFileTooLarge))
	}

	imageID := uuid.NewString()
	objKey := fmt.Sprintf("%s%s.%s", productsPrefix, imageID, ext)
	image := domain.NewImage(imageID, m.bucket, objKey, req.Data, req.MimeType)

	key, err := m.minioRepo.Upload(ctx, image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadImageRes(m.publicURL+"/"+key, key), nil
}

// DeleteImage удаляет изображение по публичному URL.
// Удаляются только объекты под публичным префиксом бакета, заглушка игнорируется.
func (m *MinioInfrastructure) DeleteImage(ctx context.Context, url string) error {
	const op = "MinioInfrastructure.DeleteImage"

	if url == "" || url == placeholderImage {
		return nil
	}

	key, ok := m.keyFromURL(url)
	if !ok {
		return e.Wrap(op, fmt.Errorf("%q: %w", url, e.ErrInvalidImageURL))
	}

	if err := m.minioRepo.Delete(ctx, key); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// CleanupImages запускает фоновое удаление изображений по их публичным URL.
// Чужие URL и заглушка пропускаются.
func (m *MinioInfrastructure) CleanupImages(urls []string) {
	keys := make([]string, 0, len(urls))
	for _, url := range urls {
		if key, ok := m.keyFromURL(url); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}

	m.wg.Add(1)
	go m.cleanupKeys(keys)
}

func (m *MinioInfrastructure) keyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, m.publicURL+"/")
	if !ok || key == "" || strings.Contains(key, "..") {
		return "", false
	}

	return key, true
}

// cleanupKeys удаляет объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupKeys"
	m.logger.Infof("%s: cleaning up %d images", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.minioRepo.Delete(ctx, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key=%s", op, key)
				break
			}

			delay := jitter.ExponentialBackoff(m.cleanupBackoff, 8*m.cleanupBackoff, attempt, jitter.DefaultJitter)
			if err := jitter.Sleep(ctx, delay); err != nil {
				m.logger.Warnf("%s: interrupted by shutdown, key=%s", op, key)
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
