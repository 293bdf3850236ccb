package ledger

import (
	"context"
	"strings"

	"github.com/bazaarhq/bazaar-inventory/pkg/db"
	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
)

// Queries is the read façade over the ledger tables. It holds no invariant
// of its own; it only reflects what the write side persisted.
type Queries struct {
	repo Repository
}

// NewQueries binds the read façade to a repository.
func NewQueries(repo Repository) (*Queries, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ledger repository required")
	}
	return &Queries{repo: repo}, nil
}

func (q *Queries) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := q.repo.FindProductByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, productNotFoundError(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return productFromModel(product), nil
}

func (q *Queries) GetProductBySKU(ctx context.Context, sku string) (*ProductDTO, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	product, err := q.repo.FindProductBySKU(ctx, sku)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"sku": sku})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product by sku")
	}
	return productFromModel(product), nil
}

func (q *Queries) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := q.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *productFromModel(&products[i]))
	}
	return dtos, nil
}

// GetStockLevel returns the current level for a known product. A product
// with no movements reads as quantity zero, not as an error.
func (q *Queries) GetStockLevel(ctx context.Context, productID, storeID int64) (*StockLevelDTO, error) {
	if storeID == 0 {
		storeID = models.DefaultStoreID
	}

	if _, err := q.repo.FindProductByID(ctx, productID); err != nil {
		if db.IsNotFound(err) {
			return nil, productNotFoundError(productID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	level, err := q.repo.FindStockLevel(ctx, productID, storeID)
	if err != nil {
		if db.IsNotFound(err) {
			return &StockLevelDTO{ProductID: productID, StoreID: storeID, Quantity: 0}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading stock level")
	}
	return levelFromModel(level), nil
}

func (q *Queries) ListMovements(ctx context.Context, filter MovementFilter) ([]MovementDTO, error) {
	if filter.MovementType != nil && !filter.MovementType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement type").
			WithDetails(map[string]any{"movement_type": *filter.MovementType})
	}

	movements, err := q.repo.ListMovements(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stock movements")
	}
	dtos := make([]MovementDTO, 0, len(movements))
	for i := range movements {
		dtos = append(dtos, *movementFromModel(&movements[i]))
	}
	return dtos, nil
}
