package models

import (
	"time"

	"github.com/bazaarhq/bazaar-inventory/pkg/enums"
)

// StockMovement is one immutable row of the append-only ledger. Quantity is
// always positive; direction is carried by MovementType.
type StockMovement struct {
	ID           int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID    int64              `gorm:"column:product_id;not null;index"`
	StoreID      int64              `gorm:"column:store_id;not null;default:1"`
	Quantity     int64              `gorm:"column:quantity;not null"`
	MovementType enums.MovementType `gorm:"column:movement_type;not null"`
	Notes        *string            `gorm:"column:notes"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}
