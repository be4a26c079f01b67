// Package testutil provides an in-memory database with the full schema for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adminrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/admin/repo"
	orderrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/order/repo"
	productrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/product/repo"
	settingrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/setting/repo"
	userrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/user/repo"
	wishlistrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/wishlist/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

// NewDB opens a private in-memory sqlite database with every table created.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, DSN: ":memory:", MaxConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, e := range []interface {
		EnsureTable(context.Context) error
	}{
		userrepo.NewUserRepo(db),
		adminrepo.NewAdminRepo(db),
		productrepo.NewProductRepo(db),
		orderrepo.NewOrderRepo(db),
		wishlistrepo.NewWishlistRepo(db),
		settingrepo.NewRepo(db),
	} {
		require.NoError(t, e.EnsureTable(ctx))
	}
	return db
}

// Logger discards everything.
func Logger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// InsertUser adds a bare user row and returns its id.
func InsertUser(t testing.TB, db *sqlx.DB, email string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowx(db.Rebind(`INSERT INTO users (first_name, last_name, email, password_hash) VALUES (?, ?, ?, ?) RETURNING id`),
		"Test", "User", email, "x").Scan(&id)
	require.NoError(t, err)
	return id
}
