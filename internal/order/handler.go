package order

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
)

// AdminChecker lets owners and admins read order lines.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type Handler struct {
	svc    *Service
	admins AdminChecker
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, admins AdminChecker, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, admins: admins, logger: logger}
}

type itemRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Size     *string         `json:"size" validate:"omitempty,max=20"`
	Color    *string         `json:"color" validate:"omitempty,max=50"`
	Quantity int             `json:"quantity" validate:"gte=1,max=10000"`
	Price    decimal.Decimal `json:"price"`
}

type createRequest struct {
	Items       []itemRequest    `json:"items" validate:"required,min=1,max=100,dive"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles POST /api/orders. The owner is the token holder.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in := CreateInput{UserID: claims.ID, TotalAmount: req.TotalAmount}
	for _, it := range req.Items {
		in.Items = append(in.Items, ItemInput{Name: it.Name, Size: it.Size, Color: it.Color, Quantity: it.Quantity, Price: it.Price})
	}
	o, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, "create order failed", err)
		return
	}
	h.logger.Infow("order placed", "order_id", o.ID, "order_number", o.OrderNumber, "user_id", o.UserID, "total", o.TotalAmount.StringFixed(2))
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":     "Order created successfully",
		"orderId":     o.ID,
		"orderNumber": o.OrderNumber,
		"totalAmount": o.TotalAmount,
	})
}

// ListMine handles GET /api/user/{id}/orders.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok || !auth.IsSelf(r.Context(), id) {
		httpx.Error(w, http.StatusForbidden, "Access denied")
		return
	}
	orders, err := h.svc.ListByUser(r.Context(), id)
	if err != nil {
		h.writeError(w, "list orders failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

// Items handles GET /api/orders/{orderId}/items for the order owner or an admin.
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "orderId")
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, "get order failed", err)
		return
	}
	if !auth.IsSelf(r.Context(), o.UserID) {
		claims, _ := auth.ClaimsFromContext(r.Context())
		isAdmin, err := h.admins.IsAdmin(r.Context(), claims.ID)
		if err != nil {
			h.writeError(w, "admin lookup failed", err)
			return
		}
		if !isAdmin {
			httpx.Error(w, http.StatusForbidden, "Access denied")
			return
		}
	}
	items, err := h.svc.Items(r.Context(), id)
	if err != nil {
		h.writeError(w, "list order items failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

// ListAll handles GET /api/admin/orders.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, "list orders failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/admin/orders/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	o, err := h.svc.GetWithItems(r.Context(), id)
	if err != nil {
		h.writeError(w, "get order failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

// UpdateStatus handles PUT /api/admin/orders/{id}.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Order not found")
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.writeError(w, "update order status failed", err)
		return
	}
	h.logger.Infow("order status updated", "order_id", id, "status", req.Status)
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "Order status updated successfully"})
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrTotalMismatch):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidStatus):
		httpx.Error(w, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Order not found")
	default:
		h.logger.Errorw(msg, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
	}
}
