package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

const (
	orderColumns = `id, user_id, order_number, total_amount, status, created_at`
	itemColumns  = `id, order_id, product_name, size, color, quantity, price`
)

type OrderRepo struct {
	db *sqlx.DB
}

func NewOrderRepo(db *sqlx.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// EnsureTable creates orders and order_items. users must exist first.
func (r *OrderRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS orders (
  id {{serial}},
  user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  order_number TEXT NOT NULL UNIQUE,
  total_amount NUMERIC(10,2) NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
CREATE TABLE IF NOT EXISTS order_items (
  id {{serial}},
  order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  size TEXT,
  color TEXT,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  price NUMERIC(10,2) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)
`
	return database.ExecScript(ctx, r.db, ddl)
}

// Create inserts o and its items in one transaction; nothing is kept if any insert fails.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	q := tx.Rebind(`INSERT INTO orders (user_id, order_number, total_amount, status) VALUES (?, ?, ?, ?) RETURNING id`)
	if err = tx.QueryRowxContext(ctx, q, o.UserID, o.OrderNumber, o.TotalAmount, o.Status).Scan(&o.ID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	iq := tx.Rebind(`INSERT INTO order_items (order_id, product_name, size, color, quantity, price) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if err = tx.QueryRowxContext(ctx, iq, it.OrderID, it.ProductName, it.Size, it.Color, it.Quantity, it.Price).Scan(&it.ID); err != nil {
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetByID returns sql.ErrNoRows when the order does not exist.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.GetContext(ctx, &o, r.db.Rebind(`SELECT `+orderColumns+` FROM orders WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the orders of userID, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	orders := []entity.Order{}
	q := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &orders, q, userID); err != nil {
		return nil, err
	}
	return orders, nil
}

// List returns every order, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]entity.Order, error) {
	orders := []entity.Order{}
	if err := r.db.SelectContext(ctx, &orders, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) Items(ctx context.Context, orderID int64) ([]entity.Item, error) {
	items := []entity.Item{}
	q := r.db.Rebind(`SELECT ` + itemColumns + ` FROM order_items WHERE order_id = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &items, q, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus sets the status of order id. Returns affected rows.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.Status) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of orders.
func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`)
	return n, err
}
