package admin

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
)

type Handler struct {
	registry *Registry
	logger   *zap.SugaredLogger
}

func NewHandler(registry *Registry, logger *zap.SugaredLogger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.registry.Stats(r.Context())
	if err != nil {
		h.logger.Errorw("stats failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	grants, err := h.registry.List(r.Context())
	if err != nil {
		h.logger.Errorw("list admins failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, grants)
}

// Grant handles POST /api/admin/make-admin/{userId}.
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.PathID(r, "userId")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.registry.Grant(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyAdmin):
			httpx.Error(w, http.StatusBadRequest, "User is already an admin")
		case errors.Is(err, ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Errorw("grant admin failed", "user_id", userID, "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Error granting admin")
		}
		return
	}
	claims, _ := auth.ClaimsFromContext(r.Context())
	h.logger.Infow("admin granted", "user_id", userID, "by", claims.ID)
	httpx.WriteJSON(w, http.StatusCreated, httpx.Message{Message: "User is now an admin"})
}

// Revoke handles DELETE /api/admin/remove-admin/{userId}.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.PathID(r, "userId")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	claims, _ := auth.ClaimsFromContext(r.Context())
	if err := h.registry.Revoke(r.Context(), claims.ID, userID); err != nil {
		switch {
		case errors.Is(err, ErrSelfRevocation):
			httpx.Error(w, http.StatusBadRequest, "Cannot remove your own admin privileges")
		case errors.Is(err, ErrNotAnAdmin):
			httpx.Error(w, http.StatusNotFound, "Admin not found")
		default:
			h.logger.Errorw("revoke admin failed", "user_id", userID, "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Error removing admin")
		}
		return
	}
	h.logger.Infow("admin revoked", "user_id", userID, "by", claims.ID)
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "Admin privileges removed"})
}
