package ledger

import (
	"context"
	"testing"

	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:ledger_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.StockMovement{},
		&models.StockLevel{},
		&models.Store{},
	))
	return conn
}

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(testTxRunner{db: conn}, NewRepository(conn), nil)
	require.NoError(t, err)
	return svc
}

func newTestQueries(t *testing.T, conn *gorm.DB) *Queries {
	t.Helper()
	queries, err := NewQueries(NewRepository(conn))
	require.NoError(t, err)
	return queries
}

func createTestProduct(t *testing.T, svc Service, sku string) *ProductDTO {
	t.Helper()
	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "Product " + sku,
		Description: "test product",
		SKU:         sku,
	})
	require.NoError(t, err)
	return product
}
