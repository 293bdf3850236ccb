package models

import "time"

// Product is a catalog entry identified by its SKU. The SKU is immutable
// after creation; UpdatedAt is set once at creation and never refreshed by
// any in-scope operation.
type Product struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	SKU         string    `gorm:"column:sku;not null;uniqueIndex"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}
