package setting

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
)

// Handler contains dependencies for handling setting endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

// NewHandler constructs a new Handler.
func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type updateRequest struct {
	Value *string `json:"value"`
}

// Public handles GET /api/site-settings and returns a key to value object.
func (h *Handler) Public(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Map(r.Context())
	if err != nil {
		h.logger.Errorw("load site settings failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

// List handles GET /api/admin/site-settings.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list site settings failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/admin/site-settings/{key}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	value := ""
	if req.Value != nil {
		value = *req.Value
	}
	if err := h.svc.Update(r.Context(), key, value); err != nil {
		switch {
		case errors.Is(err, ErrValueRequired):
			httpx.Error(w, http.StatusBadRequest, "Value is required")
		case errors.Is(err, ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "Setting not found")
		default:
			h.logger.Errorw("update site setting failed", "key", key, "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	h.logger.Infow("site setting updated", "key", key)
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "Setting updated successfully"})
}
