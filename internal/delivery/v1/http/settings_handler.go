package http

import (
	"net/http"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

type SettingsHandler struct {
	handler
	settings usecase.SettingsUC
}

func NewSettingsHandler(settings usecase.SettingsUC, logger logger.Logger) *SettingsHandler {
	return &SettingsHandler{handler: handler{logger: logger}, settings: settings}
}

type VideoSettingsResponse struct {
	Success  bool                 `json:"success"`
	Settings domain.VideoSettings `json:"settings"`
}

type AnalyticsSettingsResponse struct {
	Success  bool                     `json:"success"`
	Settings domain.AnalyticsSettings `json:"settings"`
}

func (h *SettingsHandler) getVideo(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Video(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, VideoSettingsResponse{Success: true, Settings: s})
}

func (h *SettingsHandler) saveVideo(w http.ResponseWriter, r *http.Request) {
	var in domain.VideoSettings
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	s, err := h.settings.SaveVideo(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, VideoSettingsResponse{Success: true, Settings: s})
}

func (h *SettingsHandler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Analytics(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, AnalyticsSettingsResponse{Success: true, Settings: s})
}

func (h *SettingsHandler) saveAnalytics(w http.ResponseWriter, r *http.Request) {
	var in domain.AnalyticsSettings
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	s, err := h.settings.SaveAnalytics(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, AnalyticsSettingsResponse{Success: true, Settings: s})
}
