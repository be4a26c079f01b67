package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

var (
	ErrValidation       = errors.New("invalid product")
	ErrDuplicateProduct = errors.New("product name already exists")
	ErrNotFound         = errors.New("product not found")
)

// Input carries the editable product fields. Nil pointers mean "not provided".
type Input struct {
	Name        string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Sizes       []string
	Colors      []string
	Stock       *int
	Image       *string
	IsActive    *bool
}

type Service struct {
	repo *repo.ProductRepo
}

func NewService(r *repo.ProductRepo) *Service {
	return &Service{repo: r}
}

// build validates in and turns it into a product row. isActive defaults to true.
// maxPrice is the largest value the NUMERIC(10,2) price column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

func build(in Input) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}
	price := in.Price.Round(2)
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be at least 0.01", ErrValidation)
	}
	if price.GreaterThan(maxPrice) {
		return nil, fmt.Errorf("%w: price must be at most %s", ErrValidation, maxPrice.StringFixed(2))
	}
	p := &entity.Product{
		Name:        name,
		Description: in.Description,
		Price:       price,
		Category:    in.Category,
		Sizes:       entity.StringList(in.Sizes),
		Colors:      entity.StringList(in.Colors),
		Image:       in.Image,
		IsActive:    true,
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must be 0 or more", ErrValidation)
		}
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.Product, error) {
	p, err := build(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Create(ctx, p); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, p.ID)
}

// Update replaces every editable field of product id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.Product, error) {
	p, err := build(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	n, err := s.repo.Update(ctx, p)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns product id. With publicOnly an inactive product is reported as missing.
func (s *Service) Get(ctx context.Context, id int64, publicOnly bool) (*entity.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if publicOnly && !p.IsActive {
		return nil, ErrNotFound
	}
	return p, nil
}

// ListActive is the public catalog.
func (s *Service) ListActive(ctx context.Context) ([]entity.Product, error) {
	return s.repo.List(ctx, true)
}

// ListAll includes inactive products.
func (s *Service) ListAll(ctx context.Context) ([]entity.Product, error) {
	return s.repo.List(ctx, false)
}

// Count is the size of the catalog.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SeedIfAbsent creates each product whose name is not taken yet and returns how many were added.
func (s *Service) SeedIfAbsent(ctx context.Context, inputs []Input) (int, error) {
	added := 0
	for _, in := range inputs {
		ok, err := s.repo.ExistsByName(ctx, strings.TrimSpace(in.Name))
		if err != nil {
			return added, err
		}
		if ok {
			continue
		}
		if _, err := s.Create(ctx, in); err != nil {
			return added, fmt.Errorf("seed %q: %w", in.Name, err)
		}
		added++
	}
	return added, nil
}
