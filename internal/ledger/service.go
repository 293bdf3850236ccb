package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bazaarhq/bazaar-inventory/pkg/db"
	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
	"github.com/bazaarhq/bazaar-inventory/pkg/metrics"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the only writer of products, stock movements, and stock levels.
// Every accepted movement keeps the level row equal to the signed sum of the
// movement ledger for its (product, store) pair.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	RecordMovement(ctx context.Context, input RecordMovementInput) (*MovementDTO, error)
}

type service struct {
	tx      txRunner
	repo    Repository
	metrics *metrics.LedgerMetrics
	locks   pairLocks
}

// NewService wires the ledger write side. Metrics may be nil.
func NewService(tx txRunner, repo Repository, m *metrics.LedgerMetrics) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{tx: tx, repo: repo, metrics: m}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	if _, err := s.repo.FindProductBySKU(ctx, sku); err == nil {
		return nil, duplicateSKUError(sku)
	} else if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking sku uniqueness")
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:        name,
		Description: input.Description,
		SKU:         sku,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		// the pre-check can lose a race; the unique index is the backstop
		if db.IsUniqueViolation(err) {
			return nil, duplicateSKUError(sku)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting product")
	}

	s.metrics.IncProductCreated()
	return productFromModel(product), nil
}

func (s *service) RecordMovement(ctx context.Context, input RecordMovementInput) (*MovementDTO, error) {
	if input.Quantity <= 0 {
		s.metrics.IncRejection("invalid_quantity")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"quantity": input.Quantity})
	}
	if !input.MovementType.IsValid() {
		s.metrics.IncRejection("invalid_movement_type")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement type").
			WithDetails(map[string]any{"movement_type": input.MovementType})
	}

	storeID := input.StoreID
	if storeID == 0 {
		storeID = models.DefaultStoreID
	}

	// Serialize the read-validate-write sequence per (product, store). The
	// lock closes the check-then-act window; the transaction keeps movement
	// insert and level upsert all-or-nothing. Different pairs do not contend.
	unlock := s.locks.lock(input.ProductID, storeID)
	defer unlock()

	var movement *models.StockMovement
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindProductByID(ctx, input.ProductID); err != nil {
			if db.IsNotFound(err) {
				return productNotFoundError(input.ProductID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
		}

		level, err := repo.FindStockLevel(ctx, input.ProductID, storeID)
		if err != nil {
			if !db.IsNotFound(err) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading stock level")
			}
			// no movements yet; semantically a zero level
			level = &models.StockLevel{ProductID: input.ProductID, StoreID: storeID}
		}

		if input.MovementType.IsOutbound() && level.Quantity < input.Quantity {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
				WithDetails(map[string]any{
					"available": level.Quantity,
					"requested": input.Quantity,
				})
		}

		movement = &models.StockMovement{
			ProductID:    input.ProductID,
			StoreID:      storeID,
			Quantity:     input.Quantity,
			MovementType: input.MovementType,
			Notes:        input.Notes,
		}
		if err := repo.CreateMovement(ctx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting stock movement")
		}

		level.Quantity += input.MovementType.SignedDelta(input.Quantity)
		level.LastUpdated = time.Now().UTC()
		if err := repo.SaveStockLevel(ctx, level); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating stock level")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			switch typed.Code() {
			case pkgerrors.CodeInsufficientStock:
				s.metrics.IncRejection("insufficient_stock")
			case pkgerrors.CodeNotFound:
				s.metrics.IncRejection("product_not_found")
			}
		}
		return nil, err
	}

	s.metrics.IncMovement(string(input.MovementType))
	return movementFromModel(movement), nil
}

func duplicateSKUError(sku string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "product with this SKU already exists").
		WithDetails(map[string]any{"sku": sku})
}

func productNotFoundError(productID int64) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"product_id": productID})
}

type pairKey struct {
	productID int64
	storeID   int64
}

// pairLocks hands out one mutex per (product, store) pair. The embedded
// sqlite store has no row locks, so the guard lives in process; the single
// process owns the database file.
type pairLocks struct {
	mu    sync.Mutex
	locks map[pairKey]*sync.Mutex
}

func (p *pairLocks) lock(productID, storeID int64) func() {
	key := pairKey{productID: productID, storeID: storeID}

	p.mu.Lock()
	if p.locks == nil {
		p.locks = make(map[pairKey]*sync.Mutex)
	}
	lock, ok := p.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[key] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
