package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID          int64               `db:"id" json:"id"`
	UserID      int64               `db:"user_id" json:"userId"`
	ProductName string              `db:"product_name" json:"productName"`
	Price       decimal.NullDecimal `db:"price" json:"price"`
	AddedAt     time.Time           `db:"added_at" json:"addedAt"`
}
