package ledger

import (
	"time"

	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	"github.com/bazaarhq/bazaar-inventory/pkg/enums"
)

// ProductDTO exposes product data in API responses.
type ProductDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovementDTO exposes one ledger row in API responses.
type MovementDTO struct {
	ID           int64              `json:"id"`
	ProductID    int64              `json:"product_id"`
	StoreID      int64              `json:"store_id"`
	Quantity     int64              `json:"quantity"`
	MovementType enums.MovementType `json:"movement_type"`
	Notes        *string            `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// StockLevelDTO exposes the derived on-hand quantity. LastUpdated is nil for
// a product with no movements yet (the level row does not exist).
type StockLevelDTO struct {
	ProductID   int64      `json:"product_id"`
	StoreID     int64      `json:"store_id"`
	Quantity    int64      `json:"quantity"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	SKU         string
}

// RecordMovementInput holds the validated payload to append a movement.
// StoreID zero means the default store.
type RecordMovementInput struct {
	ProductID    int64
	StoreID      int64
	Quantity     int64
	MovementType enums.MovementType
	Notes        *string
}

func productFromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		SKU:         m.SKU,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func movementFromModel(m *models.StockMovement) *MovementDTO {
	if m == nil {
		return nil
	}
	return &MovementDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		StoreID:      m.StoreID,
		Quantity:     m.Quantity,
		MovementType: m.MovementType,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

func levelFromModel(m *models.StockLevel) *StockLevelDTO {
	if m == nil {
		return nil
	}
	updated := m.LastUpdated
	return &StockLevelDTO{
		ProductID:   m.ProductID,
		StoreID:     m.StoreID,
		Quantity:    m.Quantity,
		LastUpdated: &updated,
	}
}
