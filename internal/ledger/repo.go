package ledger

import (
	"context"

	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	"github.com/bazaarhq/bazaar-inventory/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovementFilter narrows ListMovements; nil fields are ignored and the rest
// combine with AND.
type MovementFilter struct {
	ProductID    *int64
	StoreID      *int64
	MovementType *enums.MovementType
}

// Repository manages persistence for the ledger tables. It is the only
// component that touches products, stock_movements, and stock_levels.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProduct(ctx context.Context, product *models.Product) error
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	FindProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateMovement(ctx context.Context, movement *models.StockMovement) error
	ListMovements(ctx context.Context, filter MovementFilter) ([]models.StockMovement, error)
	FindStockLevel(ctx context.Context, productID, storeID int64) (*models.StockLevel, error)
	SaveStockLevel(ctx context.Context, level *models.StockLevel) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) CreateMovement(ctx context.Context, movement *models.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *repository) ListMovements(ctx context.Context, filter MovementFilter) ([]models.StockMovement, error) {
	qb := r.db.WithContext(ctx).Model(&models.StockMovement{})

	if filter.ProductID != nil {
		qb = qb.Where("product_id = ?", *filter.ProductID)
	}
	if filter.StoreID != nil {
		qb = qb.Where("store_id = ?", *filter.StoreID)
	}
	if filter.MovementType != nil {
		qb = qb.Where("movement_type = ?", *filter.MovementType)
	}

	var movements []models.StockMovement
	if err := qb.
		Order("created_at DESC").
		Order("id DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *repository) FindStockLevel(ctx context.Context, productID, storeID int64) (*models.StockLevel, error) {
	var level models.StockLevel
	if err := r.db.WithContext(ctx).
		First(&level, "product_id = ? AND store_id = ?", productID, storeID).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *repository) SaveStockLevel(ctx context.Context, level *models.StockLevel) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "last_updated"}),
		}).
		Create(level).Error
}
