package remote

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
)

// PostgresStore serves the catalog from a local products table and records
// submitted orders, for deployments that host their own store instead of
// proxying an upstream API.
type PostgresStore struct {
	db *sql.DB
}

func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		price       INTEGER,
		image       TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS orders (
		id         TEXT PRIMARY KEY,
		items      TEXT[] NOT NULL,
		total      INTEGER NOT NULL,
		payment    TEXT NOT NULL,
		address    TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, category, price, image FROM products ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %v", ErrRemote, err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		var price sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &price, &p.Image); err != nil {
			return nil, fmt.Errorf("%w: scan product: %v", ErrRemote, err)
		}
		if price.Valid {
			v := int(price.Int64)
			p.Price = &v
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate products: %v", ErrRemote, err)
	}
	return products, nil
}

func (s *PostgresStore) Submit(ctx context.Context, o order.Order) (Response, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (id, items, total, payment, address, email, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, pq.Array(o.Items), o.Total, o.Payment, o.Address, o.Email, o.Phone, time.Now())
	if err != nil {
		return Response{}, fmt.Errorf("%w: insert order: %v", ErrRemote, err)
	}
	return Response{ID: id, Total: o.Total}, nil
}
