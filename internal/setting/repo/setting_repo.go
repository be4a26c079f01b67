package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/setting/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

// Repo is the site_settings store.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

// EnsureTable ensures the site_settings table exists.
func (r *Repo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS site_settings (
  id {{serial}},
  setting_key TEXT NOT NULL UNIQUE,
  setting_value TEXT NOT NULL,
  description TEXT,
  updated_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`
	return database.ExecScript(ctx, r.db, ddl)
}

// InsertIfAbsent adds s unless its key exists. Returns affected rows.
func (r *Repo) InsertIfAbsent(ctx context.Context, s entity.SiteSetting) (int64, error) {
	q := r.db.Rebind(`INSERT INTO site_settings (setting_key, setting_value, description) VALUES (?, ?, ?)
		ON CONFLICT (setting_key) DO NOTHING`)
	res, err := r.db.ExecContext(ctx, q, s.Key, s.Value, s.Description)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns all rows ordered by key.
func (r *Repo) List(ctx context.Context) ([]entity.SiteSetting, error) {
	settings := []entity.SiteSetting{}
	q := `SELECT id, setting_key, setting_value, description, updated_at FROM site_settings ORDER BY setting_key`
	if err := r.db.SelectContext(ctx, &settings, q); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateValue sets the value of key. Returns affected rows.
func (r *Repo) UpdateValue(ctx context.Context, key, value string) (int64, error) {
	q := r.db.Rebind(`UPDATE site_settings SET setting_value = ?, updated_at = CURRENT_TIMESTAMP WHERE setting_key = ?`)
	res, err := r.db.ExecContext(ctx, q, value, key)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
