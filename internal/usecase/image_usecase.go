package usecase

import (
	"context"

	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

// ImageUseCase загружает и удаляет изображения товаров.
// Без объектного хранилища все операции возвращают e.ErrStorageDisabled.
type ImageUseCase struct {
	imagesInfra ImagesInfra
	logger      logger.Logger
}

func NewImageUC(imagesInfra ImagesInfra, logger logger.Logger) *ImageUseCase {
	return &ImageUseCase{
		imagesInfra: imagesInfra,
		logger:      logger,
	}
}

func (i *ImageUseCase) Upload(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error) {
	const op = "ImageUseCase.Upload"

	if i.imagesInfra == nil {
		return nil, e.ErrStorageDisabled
	}

	res, err := i.imagesInfra.UploadImage(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	i.logger.Infof("image %s uploaded (%d bytes)", res.Key, req.Size)
	return res, nil
}

func (i *ImageUseCase) Delete(ctx context.Context, url string) error {
	const op = "ImageUseCase.Delete"

	if i.imagesInfra == nil {
		return e.ErrStorageDisabled
	}

	if url == "" {
		return e.Wrap(op, e.NewValidationError("url", "is required"))
	}

	if err := i.imagesInfra.DeleteImage(ctx, url); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
