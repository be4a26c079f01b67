package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/wishlist/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

type WishlistRepo struct {
	db *sqlx.DB
}

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo {
	return &WishlistRepo{db: db}
}

// EnsureTable creates the wishlist table. users must exist first.
func (r *WishlistRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS wishlist (
  id {{serial}},
  user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  price NUMERIC(10,2),
  added_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_wishlist_user_id ON wishlist(user_id)
`
	return database.ExecScript(ctx, r.db, ddl)
}

func (r *WishlistRepo) Create(ctx context.Context, it *entity.Item) (int64, error) {
	q := r.db.Rebind(`INSERT INTO wishlist (user_id, product_name, price) VALUES (?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, q, it.UserID, it.ProductName, it.Price).Scan(&it.ID); err != nil {
		return 0, err
	}
	return it.ID, nil
}

// ListByUser returns the entries of userID, most recently added first.
func (r *WishlistRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Item, error) {
	items := []entity.Item{}
	q := r.db.Rebind(`SELECT id, user_id, product_name, price, added_at FROM wishlist WHERE user_id = ? ORDER BY added_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &items, q, userID); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes entry id only if it belongs to userID. Returns affected rows.
func (r *WishlistRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM wishlist WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
