package models

import "time"

// StockLevel caches the current on-hand quantity per (product, store). It is
// derived state: always the signed sum of the movement ledger for the pair.
// Rows appear lazily on the first movement; an absent row reads as zero.
type StockLevel struct {
	ProductID   int64     `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	StoreID     int64     `gorm:"column:store_id;primaryKey;autoIncrement:false"`
	Quantity    int64     `gorm:"column:quantity;not null;default:0"`
	LastUpdated time.Time `gorm:"column:last_updated"`
}
