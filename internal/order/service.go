package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

var (
	ErrValidation    = errors.New("invalid order")
	ErrTotalMismatch = errors.New("totalAmount does not match items")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("order not found")
)

// ItemInput is one checkout line.
type ItemInput struct {
	Name     string
	Size     *string
	Color    *string
	Quantity int
	Price    decimal.Decimal
}

// CreateInput is a checkout. TotalAmount, when set, must equal the computed total.
type CreateInput struct {
	UserID      int64
	Items       []ItemInput
	TotalAmount *decimal.Decimal
}

const (
	// MaxQuantity bounds a single line.
	MaxQuantity = 10000
)

// MaxAmount is the largest value a NUMERIC(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

type Service struct {
	repo      *repo.OrderRepo
	newNumber func() string
}

func NewService(r *repo.OrderRepo) *Service {
	return &Service{repo: r, newNumber: utilities.NewOrderNumber}
}

// Total sums price times quantity over items. Prices are rounded to cents
// first, so the total always matches the stored lines.
func Total(items []ItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Round(2).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Create places a pending order for in.UserID with a fresh order number.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	items := make([]entity.Item, 0, len(in.Items))
	for i, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		price := it.Price.Round(2)
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: item %d: name is required", ErrValidation, i)
		case it.Quantity < 1:
			return nil, fmt.Errorf("%w: item %d: quantity must be at least 1", ErrValidation, i)
		case it.Quantity > MaxQuantity:
			return nil, fmt.Errorf("%w: item %d: quantity must be at most %d", ErrValidation, i, MaxQuantity)
		case !price.IsPositive():
			return nil, fmt.Errorf("%w: item %d: price must be at least 0.01", ErrValidation, i)
		case price.GreaterThan(MaxAmount):
			return nil, fmt.Errorf("%w: item %d: price must be at most %s", ErrValidation, i, MaxAmount.StringFixed(2))
		}
		items = append(items, entity.Item{
			ProductName: name,
			Size:        it.Size,
			Color:       it.Color,
			Quantity:    it.Quantity,
			Price:       price,
		})
	}

	total := Total(in.Items)
	if total.GreaterThan(MaxAmount) {
		return nil, fmt.Errorf("%w: total must be at most %s", ErrValidation, MaxAmount.StringFixed(2))
	}
	if in.TotalAmount != nil && !in.TotalAmount.Round(2).Equal(total) {
		return nil, fmt.Errorf("%w: expected %s", ErrTotalMismatch, total.StringFixed(2))
	}

	o := &entity.Order{
		UserID:      in.UserID,
		OrderNumber: s.newNumber(),
		TotalAmount: total,
		Status:      entity.StatusPending,
		Items:       items,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Get returns order id without items.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// GetWithItems returns order id and its lines.
func (s *Service) GetWithItems(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Items, err = s.repo.Items(ctx, id); err != nil {
		return nil, err
	}
	return o, nil
}

// Items returns the lines of order id.
func (s *Service) Items(ctx context.Context, id int64) ([]entity.Item, error) {
	return s.repo.Items(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]entity.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus sets any valid status; unknown values are rejected before writing.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	st := entity.Status(strings.TrimSpace(status))
	if !st.Valid() {
		return ErrInvalidStatus
	}
	n, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
