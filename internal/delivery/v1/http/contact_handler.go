package http

import (
	"net/http"

	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

type ContactHandler struct {
	handler
	contact usecase.ContactUC
}

func NewContactHandler(contact usecase.ContactUC, logger logger.Logger) *ContactHandler {
	return &ContactHandler{handler: handler{logger: logger}, contact: contact}
}

// submit
//
//	@Summary	Сообщение из формы обратной связи
//	@Tags		contact
//	@Accept		json
//	@Produce	json
//	@Param		message	body		usecase.ContactReq	true	"Сообщение"
//	@Success	200		{object}	SuccessResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/contact [post]
func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req usecase.ContactReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.contact.Submit(r.Context(), &req); err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SuccessResponse{Success: true})
}
