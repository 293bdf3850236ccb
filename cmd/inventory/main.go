package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/bazaarhq/bazaar-inventory/internal/ledger"
	"github.com/bazaarhq/bazaar-inventory/pkg/config"
	"github.com/bazaarhq/bazaar-inventory/pkg/db"
	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	"github.com/bazaarhq/bazaar-inventory/pkg/enums"
	"github.com/bazaarhq/bazaar-inventory/pkg/logger"
	"github.com/bazaarhq/bazaar-inventory/pkg/metrics"
	"github.com/bazaarhq/bazaar-inventory/pkg/migrate"
)

const usageText = `usage: inventory <command> [flags]

commands:
  product add     register a product (-name, -sku, -description)
  product list    list the catalog with current stock
  stock add       receive stock (-product-id, -quantity, -store-id, -notes)
  stock sell      record a sale (-product-id, -quantity, -store-id, -notes)
  stock remove    record a manual removal (-product-id, -quantity, -store-id, -notes)
  stock level     show the current on-hand quantity (-product-id, -store-id)
  stock history   show the movement ledger (-product-id, -store-id, -movement-type)
`

func main() {
	if len(os.Args) < 3 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	logg := logger.New(logger.Options{ServiceName: "inventory-cli", Level: logger.ParseLevel("warn")})
	_ = godotenv.Load()

	cfg, err := config.Load()
	fatalIf(err, "failed to load config")

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	fatalIf(err, "failed to open database")
	defer dbClient.Close()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	fatalIf(err, "failed to run migrations")

	repo := ledger.NewRepository(dbClient.DB())
	svc, err := ledger.NewService(dbClient, repo, metrics.NewLedgerMetrics(nil))
	fatalIf(err, "failed to create ledger service")
	queries, err := ledger.NewQueries(repo)
	fatalIf(err, "failed to create ledger queries")

	app := &cli{svc: svc, queries: queries}

	group, command := os.Args[1], os.Args[2]
	args := os.Args[3:]

	switch {
	case group == "product" && command == "add":
		err = app.productAdd(ctx, args)
	case group == "product" && command == "list":
		err = app.productList(ctx, args)
	case group == "stock" && command == "add":
		err = app.recordMovement(ctx, args, enums.MovementTypeStockIn)
	case group == "stock" && command == "sell":
		err = app.recordMovement(ctx, args, enums.MovementTypeSale)
	case group == "stock" && command == "remove":
		err = app.recordMovement(ctx, args, enums.MovementTypeManualRemoval)
	case group == "stock" && command == "level":
		err = app.stockLevel(ctx, args)
	case group == "stock" && command == "history":
		err = app.stockHistory(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	fatalIf(err, "command failed")
}

type cli struct {
	svc     ledger.Service
	queries *ledger.Queries
}

func (c *cli) productAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product add", flag.ExitOnError)
	name := fs.String("name", "", "product name")
	sku := fs.String("sku", "", "unique SKU")
	description := fs.String("description", "", "product description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	product, err := c.svc.CreateProduct(ctx, ledger.CreateProductInput{
		Name:        *name,
		Description: *description,
		SKU:         *sku,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created product %d (%s)\n", product.ID, product.SKU)
	return nil
}

func (c *cli) productList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product list", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := c.queries.ListProducts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tNAME\tSTOCK\tCREATED")
	for _, p := range products {
		level, err := c.queries.GetStockLevel(ctx, p.ID, models.DefaultStoreID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", p.ID, p.SKU, p.Name, level.Quantity, p.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func (c *cli) recordMovement(ctx context.Context, args []string, movementType enums.MovementType) error {
	fs := flag.NewFlagSet("stock "+string(movementType), flag.ExitOnError)
	productID := fs.Int64("product-id", 0, "product id")
	qty := fs.Int64("quantity", 0, "quantity (positive)")
	storeID := fs.Int64("store-id", models.DefaultStoreID, "store id")
	notes := fs.String("notes", "", "optional notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := ledger.RecordMovementInput{
		ProductID:    *productID,
		StoreID:      *storeID,
		Quantity:     *qty,
		MovementType: movementType,
	}
	if *notes != "" {
		input.Notes = notes
	}

	movement, err := c.svc.RecordMovement(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("recorded %s of %d for product %d (movement %d)\n",
		movement.MovementType, movement.Quantity, movement.ProductID, movement.ID)
	return nil
}

func (c *cli) stockLevel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stock level", flag.ExitOnError)
	productID := fs.Int64("product-id", 0, "product id")
	storeID := fs.Int64("store-id", models.DefaultStoreID, "store id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := c.queries.GetStockLevel(ctx, *productID, *storeID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tSTORE\tQUANTITY\tLAST UPDATED")
	updated := "-"
	if level.LastUpdated != nil {
		updated = level.LastUpdated.Format(time.RFC3339)
	}
	fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", level.ProductID, level.StoreID, level.Quantity, updated)
	return w.Flush()
}

func (c *cli) stockHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stock history", flag.ExitOnError)
	productID := fs.Int64("product-id", 0, "filter by product id (0 for all)")
	storeID := fs.Int64("store-id", 0, "filter by store id (0 for all)")
	movementType := fs.String("movement-type", "", "filter by movement type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter ledger.MovementFilter
	if *productID > 0 {
		filter.ProductID = productID
	}
	if *storeID > 0 {
		filter.StoreID = storeID
	}
	if *movementType != "" {
		parsed, err := enums.ParseMovementType(*movementType)
		if err != nil {
			return err
		}
		filter.MovementType = &parsed
	}

	movements, err := c.queries.ListMovements(ctx, filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tSTORE\tTYPE\tQTY\tNOTES\tAT")
	for _, m := range movements {
		notes := ""
		if m.Notes != nil {
			notes = *m.Notes
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%d\t%s\t%s\n",
			m.ID, m.ProductID, m.StoreID, m.MovementType, m.Quantity, notes, m.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func fatalIf(err error, msg string) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
