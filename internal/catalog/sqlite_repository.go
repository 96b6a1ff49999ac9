package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) ListProducts(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	query := `
		SELECT id, owner_id, name, selling_price, cost_price, unit,
		       stock_quantity, low_stock_alert, category_id, image_url, created_at
		FROM products
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, ownerID string, id int64) (*domain.Product, error) {
	query := `
		SELECT id, owner_id, name, selling_price, cost_price, unit,
		       stock_quantity, low_stock_alert, category_id, image_url, created_at
		FROM products
		WHERE id = $1 AND owner_id = $2
	`

	rows, err := r.db.QueryContext(ctx, query, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	var product *domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		product = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (r *Repository) UpdateStock(ctx context.Context, ownerID string, id int64, newStock int64) error {
	if newStock < 0 {
		return ErrNegativeStock
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock_quantity = $1 WHERE id = $2 AND owner_id = $3`,
		newStock, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	p := &domain.Product{}
	err := rows.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.SellingPrice,
		&p.CostPrice,
		&p.Unit,
		&p.StockQuantity,
		&p.LowStockAlert,
		&p.CategoryID,
		&p.ImageURL,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}
