package wishlist

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/wishlist/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/wishlist/repo"
)

var (
	ErrValidation = errors.New("productName is required")
	ErrNotFound   = errors.New("wishlist item not found")
)

type Service struct {
	repo *repo.WishlistRepo
}

func NewService(r *repo.WishlistRepo) *Service {
	return &Service{repo: r}
}

// Add stores productName on the wishlist of userID. price is optional.
func (s *Service) Add(ctx context.Context, userID int64, productName string, price *decimal.Decimal) (*entity.Item, error) {
	name := strings.TrimSpace(productName)
	if name == "" {
		return nil, ErrValidation
	}
	it := &entity.Item{UserID: userID, ProductName: name}
	if price != nil {
		it.Price = decimal.NewNullDecimal(price.Round(2))
	}
	if _, err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]entity.Item, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Remove deletes entry id of userID. Entries of other users are reported as missing.
func (s *Service) Remove(ctx context.Context, userID, id int64) error {
	n, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
