package product

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/httpx"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type productRequest struct {
	Name        string           `json:"name" validate:"max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Sizes       []string         `json:"sizes" validate:"max=20,dive,required,max=20"`
	Colors      []string         `json:"colors" validate:"max=20,dive,required,max=50"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image" validate:"omitempty,max=500"`
	IsActive    *flexBool        `json:"isActive"`
}

// flexBool accepts JSON booleans as well as the 0/1 the admin form posts.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("isActive must be a boolean or 0/1, got %s", data)
	}
	return nil
}

func (req productRequest) input() Input {
	return Input{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Stock:       req.Stock,
		Image:       req.Image,
		IsActive:    (*bool)(req.IsActive),
	}
}

// ListPublic handles GET /api/products.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListActive(r.Context())
	if err != nil {
		h.logger.Errorw("list products failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

// GetPublic handles GET /api/products/{id}.
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	p, err := h.svc.Get(r.Context(), id, true)
	if err != nil {
		h.writeError(w, "get product failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

// ListAll handles GET /api/admin/products.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.logger.Errorw("list products failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		h.writeError(w, "create product failed", err)
		return
	}
	h.logger.Infow("product created", "product_id", p.ID, "name", p.Name)
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeError(w, "update product failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, "delete product failed", err)
		return
	}
	h.logger.Infow("product deleted", "product_id", id)
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: "Product deleted successfully"})
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateProduct):
		httpx.Error(w, http.StatusBadRequest, "Product name already exists")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Product not found")
	default:
		h.logger.Errorw(msg, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Database error")
	}
}
