package models

import "time"

// DefaultStoreID is the single store every movement records against today.
const DefaultStoreID int64 = 1

// Store is modeled for forward extension; only the default store (id=1) is
// ever seeded and no business rule branches on it yet.
type Store struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	Location  string    `gorm:"column:location"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
