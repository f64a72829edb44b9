// Package catalog holds the product list and derives filtered, sorted
// views of it. It is the source callers resolve cart candidates against.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Repository reads products from a local sqlite file.
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

func (r *Repository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, category, price, discount_price, image_url, created_at
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, category, price, discount_price, image_url, created_at
		FROM products
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Count returns the number of products in the catalog.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Seed inserts products, used to load the initial catalog.
func (r *Repository) Seed(ctx context.Context, products []domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, description, category, price, discount_price, image_url, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.Category, p.Price, p.DiscountPrice, p.ImageURL,
			p.CreatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("failed to insert product %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var p domain.Product
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.DiscountPrice, &p.ImageURL, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan product: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return p, fmt.Errorf("failed to parse product timestamp: %w", err)
	}
	p.CreatedAt = ts
	return p, nil
}
