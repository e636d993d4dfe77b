package repository

import (
	"context"
	"fmt"
	"time"

	"interioai/internal/catalog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PriceQuery reads the catalog in declaration order. Position drives first-match
// lookups, so it must be stable.
const PriceQuery = `
	SELECT name, budget, mid_range, premium
	FROM furniture_prices
	WHERE is_active = true
	ORDER BY position ASC, id ASC`

// CatalogRepository loads the price catalog from PostgreSQL. It only reads.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository connects to dsn, in URL or key=value form
func NewCatalogRepository(dsn string, maxConn, maxIdleConn int) (*CatalogRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return NewCatalogRepositoryFromDB(db), nil
}

// NewCatalogRepositoryFromDB wraps an existing connection
func NewCatalogRepositoryFromDB(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Close closes the database connection
func (r *CatalogRepository) Close() error {
	return r.db.Close()
}

// LoadPriceEntries returns every active catalog row in declaration order
func (r *CatalogRepository) LoadPriceEntries(ctx context.Context) ([]catalog.PriceEntry, error) {
	var entries []catalog.PriceEntry
	if err := r.db.SelectContext(ctx, &entries, PriceQuery); err != nil {
		return nil, fmt.Errorf("failed to load price catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("price catalog is empty")
	}
	return entries, nil
}

// LoadPricingTable builds a validated PricingTable from the database
func (r *CatalogRepository) LoadPricingTable(ctx context.Context, opts ...catalog.PricingOption) (*catalog.PricingTable, error) {
	entries, err := r.LoadPriceEntries(ctx)
	if err != nil {
		return nil, err
	}
	table := catalog.NewPricingTable(entries, opts...)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
