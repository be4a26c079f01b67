package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/testutil"
)

func newProducts(t *testing.T) *Service {
	t.Helper()
	return NewService(repo.NewProductRepo(testutil.NewDB(t)))
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateAndGet(t *testing.T) {
	s := newProducts(t)
	ctx := context.Background()

	p, err := s.Create(ctx, Input{Name: " Tee ", Price: price("19.99"), Sizes: []string{"M", "S"}, Colors: nil})
	require.NoError(t, err)
	assert.Equal(t, "Tee", p.Name)
	assert.True(t, p.IsActive)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, []string{"M", "S"}, []string(p.Sizes))
	assert.NotNil(t, p.Colors)
	assert.Empty(t, p.Colors)
	assert.Equal(t, "19.99", p.Price.StringFixed(2))

	got, err := s.Get(ctx, p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCreateValidationLeavesTableUnchanged(t *testing.T) {
	s := newProducts(t)
	ctx := context.Background()
	neg := -1

	bad := []Input{
		{Name: "", Price: price("10")},
		{Name: "   ", Price: price("10")},
		{Name: "No price"},
		{Name: "Zero", Price: price("0")},
		{Name: "Negative", Price: price("-5")},
		{Name: "Stock", Price: price("5"), Stock: &neg},
	}
	for _, in := range bad {
		_, err := s.Create(ctx, in)
		assert.ErrorIs(t, err, ErrValidation, in.Name)
	}
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDuplicateName(t *testing.T) {
	s := newProducts(t)
	ctx := context.Background()

	_, err := s.Create(ctx, Input{Name: "Tee", Price: price("10")})
	require.NoError(t, err)
	_, err = s.Create(ctx, Input{Name: "Tee", Price: price("12")})
	assert.ErrorIs(t, err, ErrDuplicateProduct)

	other, err := s.Create(ctx, Input{Name: "Other", Price: price("12")})
	require.NoError(t, err)
	_, err = s.Update(ctx, other.ID, Input{Name: "Tee", Price: price("12")})
	assert.ErrorIs(t, err, ErrDuplicateProduct)
}

func TestInactiveHiddenFromPublic(t *testing.T) {
	s := newProducts(t)
	ctx := context.Background()
	off := false

	active, err := s.Create(ctx, Input{Name: "On", Price: price("10")})
	require.NoError(t, err)
	hidden, err := s.Create(ctx, Input{Name: "Off", Price: price("10"), IsActive: &off})
	require.NoError(t, err)

	list, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.Get(ctx, hidden.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, hidden.ID, false)
	assert.NoError(t, err)
}

func TestUpdateAndDelete(t *testing.T) {
	s := newProducts(t)
	ctx := context.Background()
	stock := 7

	p, err := s.Create(ctx, Input{Name: "Tee", Price: price("10"), Colors: []string{"Red"}})
	require.NoError(t, err)

	up, err := s.Update(ctx, p.ID, Input{Name: "Tee 2", Price: price("11.5"), Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "Tee 2", up.Name)
	assert.Equal(t, 7, up.Stock)
	assert.Empty(t, up.Colors)
	assert.True(t, up.IsActive)

	_, err = s.Update(ctx, p.ID+100, Input{Name: "X", Price: price("1")})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, p.ID))
	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)
}

func TestSeedIfAbsent(t *testing.T) {
	s := newProducts(t)
	ctx := context.Background()

	n, err := s.SeedIfAbsent(ctx, SampleCatalog())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.SeedIfAbsent(ctx, SampleCatalog())
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := s.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}
