package wishlist

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type addRequest struct {
	ProductName string           `json:"productName" validate:"required,max=255"`
	Price       *decimal.Decimal `json:"price"`
}

// Add handles POST /api/wishlist.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	var req addRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	it, err := h.svc.Add(r.Context(), claims.ID, req.ProductName, req.Price)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorw("wishlist add failed", "user_id", claims.ID, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"message": "Added to wishlist", "id": it.ID})
}

// List handles GET /api/user/{id}/wishlist.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok || !auth.IsSelf(r.Context(), id) {
		httpx.Error(w, http.StatusForbidden, "Access denied")
		return
	}
	items, err := h.svc.List(r.Context(), id)
	if err != nil {
		h.logger.Errorw("wishlist list failed", "user_id", id, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

// Remove handles DELETE /api/wishlist/{id}.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Wishlist item not found")
		return
	}
	if err := h.svc.Remove(r.Context(), claims.ID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Wishlist item not found")
			return
		}
		h.logger.Errorw("wishlist remove failed", "user_id", claims.ID, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "Removed from wishlist"})
}
