package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const RoleAdmin = "admin"

// Grant marks a user as administrator. One row per user.
type Grant struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Stats is the dashboard summary.
type Stats struct {
	Users    int64           `json:"users"`
	Products int64           `json:"products"`
	Orders   int64           `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}
