package http

import (
	"net/http"

	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

type ImageHandler struct {
	handler
	images       usecase.ImageUC
	maxImageSize int64
}

func NewImageHandler(images usecase.ImageUC, maxImageSize int64, logger logger.Logger) *ImageHandler {
	return &ImageHandler{handler: handler{logger: logger}, images: images, maxImageSize: maxImageSize}
}

type UploadImageResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type deleteImageReq struct {
	URL string `json:"url"`
}

// uploadImage
//
//	@Summary	Загрузка изображения товара
//	@Tags		admin
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"jpeg, png, webp или gif до 5 МБ"
//	@Success	200		{object}	UploadImageResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	413		{object}	ErrorResponse
//	@Failure	503		{object}	ErrorResponse	"Хранилище не настроено"
//	@Router		/admin/images [post]
func (h *ImageHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 8 << 20

	// Запас на служебные части multipart
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+(1<<20))

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.fail(w, r, err)
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		h.fail(w, r, e.ErrNoImages)
		return
	}

	fh := files[0]
	data, mimeType, err := readFile(fh, h.maxImageSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.images.Upload(r.Context(), usecase.NewUploadImageReq(data, mimeType, int64(len(data)), fh.Filename))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, UploadImageResponse{Success: true, URL: res.URL})
}

func (h *ImageHandler) deleteImage(w http.ResponseWriter, r *http.Request) {
	var req deleteImageReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.images.Delete(r.Context(), req.URL); err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SuccessResponse{Success: true})
}
