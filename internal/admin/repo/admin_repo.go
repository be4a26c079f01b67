package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/admin/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

type AdminRepo struct {
	db *sqlx.DB
}

func NewAdminRepo(db *sqlx.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// EnsureTable creates the admins table. users must exist first.
func (r *AdminRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS admins (
  id {{serial}},
  user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  role TEXT NOT NULL DEFAULT 'admin',
  created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`
	return database.ExecScript(ctx, r.db, ddl)
}

// Exists reports whether userID holds a grant.
func (r *AdminRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, r.db.Rebind(`SELECT 1 FROM admins WHERE user_id = ?`), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert adds a grant; a second grant for the same user violates the unique key.
func (r *AdminRepo) Insert(ctx context.Context, userID int64, role string) (int64, error) {
	var id int64
	q := r.db.Rebind(`INSERT INTO admins (user_id, role) VALUES (?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, q, userID, role).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes the grant of userID. Returns affected rows.
func (r *AdminRepo) Delete(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM admins WHERE user_id = ?`), userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns all grants, oldest first.
func (r *AdminRepo) List(ctx context.Context) ([]entity.Grant, error) {
	grants := []entity.Grant{}
	if err := r.db.SelectContext(ctx, &grants, `SELECT id, user_id, role, created_at FROM admins ORDER BY created_at, id`); err != nil {
		return nil, err
	}
	return grants, nil
}

// Stats counts users, products and orders and sums order totals.
func (r *AdminRepo) Stats(ctx context.Context) (*entity.Stats, error) {
	var s entity.Stats
	counts := []struct {
		q   string
		dst *int64
	}{
		{`SELECT COUNT(*) FROM users`, &s.Users},
		{`SELECT COUNT(*) FROM products`, &s.Products},
		{`SELECT COUNT(*) FROM orders`, &s.Orders},
	}
	for _, c := range counts {
		if err := r.db.GetContext(ctx, c.dst, c.q); err != nil {
			return nil, err
		}
	}
	var revenue decimal.NullDecimal
	if err := r.db.GetContext(ctx, &revenue, `SELECT SUM(total_amount) FROM orders`); err != nil {
		return nil, err
	}
	s.Revenue = decimal.Zero
	if revenue.Valid {
		s.Revenue = revenue.Decimal.Round(2)
	}
	return &s, nil
}
