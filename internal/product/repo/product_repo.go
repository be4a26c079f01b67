package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

const productColumns = `id, name, description, price, category, sizes, colors, stock, image, is_active, created_at, updated_at`

type ProductRepo struct {
	db *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// EnsureTable creates the products table (idempotent).
func (r *ProductRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS products (
  id {{serial}},
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  price NUMERIC(10,2) NOT NULL CHECK (price > 0),
  category TEXT,
  sizes TEXT NOT NULL DEFAULT '[]',
  colors TEXT NOT NULL DEFAULT '[]',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image TEXT,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_active ON products(is_active, created_at)
`
	return database.ExecScript(ctx, r.db, ddl)
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	q := `INSERT INTO products (name, description, price, category, sizes, colors, stock, image, is_active)
		  VALUES (:name, :description, :price, :category, :sizes, :colors, :stock, :image, :is_active) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, q, p)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&p.ID); err != nil {
			return 0, err
		}
	}
	return p.ID, rows.Err()
}

// GetByID returns sql.ErrNoRows when the product does not exist.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	q := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products newest first, only active ones when activeOnly is set.
func (r *ProductRepo) List(ctx context.Context, activeOnly bool) ([]entity.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if activeOnly {
		q += ` WHERE is_active = ?`
		args = append(args, true)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	products := []entity.Product{}
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return products, nil
}

// Update replaces every editable column of p.ID. Returns affected rows.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (int64, error) {
	q := `UPDATE products SET name = :name, description = :description, price = :price, category = :category,
		  sizes = :sizes, colors = :colors, stock = :stock, image = :image, is_active = :is_active,
		  updated_at = CURRENT_TIMESTAMP WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, q, p)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of products.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// ExistsByName reports whether a product called name is present.
func (r *ProductRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM products WHERE name = ?`), name); err != nil {
		return false, err
	}
	return n > 0, nil
}
