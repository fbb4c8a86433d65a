package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; pgxmock satisfies
// it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            sku TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            price_minor BIGINT NOT NULL,
            currency TEXT NOT NULL,
            stock BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            payment_reference TEXT NOT NULL,
            status TEXT NOT NULL,
            amount_minor BIGINT NOT NULL,
            currency TEXT NOT NULL,
            failure_reason TEXT,
            payment_event_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_id TEXT NOT NULL REFERENCES orders(id),
            product_id TEXT NOT NULL REFERENCES products(id),
            quantity BIGINT NOT NULL,
            unit_price_minor BIGINT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_payment_reference ON orders(payment_reference)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, payment_reference, status, amount_minor, currency, failure_reason, payment_event_at, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.PaymentReference, &o.Status, &o.AmountMinor, &o.Currency, &o.FailureReason, &o.PaymentEventAt, &o.CreatedAt, &o.UpdatedAt)
}

// --- OrderRepository implementation ---

func (r *orderRepository) CreateCheckout(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const decrement = `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`
		for _, item := range items {
			tag, err := tx.Exec(ctx, decrement, item.Quantity, item.ProductID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrInsufficientStock
			}
		}

		const insertOrder = `INSERT INTO orders (id, payment_reference, status, amount_minor, currency)
                             VALUES ($1, $2, $3, $4, $5)
                             RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder, order.ID, order.PaymentReference, order.Status, order.AmountMinor, order.Currency).
			Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price_minor) VALUES ($1, $2, $3, $4)`
		for _, item := range items {
			if _, err := tx.Exec(ctx, insertItem, order.ID, item.ProductID, item.Quantity, item.UnitPriceMinor); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) FindByPaymentReference(ctx context.Context, reference string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_reference=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, reference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) ApplyPaymentStatus(ctx context.Context, orderIDs []string, status model.OrderStatus, reason *string, eventAt time.Time) (int, error) {
	// Per-row guards keep terminal statuses and newer events intact; the
	// surrounding transaction keeps the multi-order write all-or-nothing.
	const update = `UPDATE orders SET status=$1, failure_reason=$2, payment_event_at=$3, updated_at=NOW()
                    WHERE id=$4
                      AND status NOT IN ('Shipped','Delivered','Cancelled')
                      AND (payment_event_at IS NULL OR payment_event_at < $3)`

	updated := 0
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, id := range orderIDs {
			tag, err := tx.Exec(ctx, update, status, reason, eventAt, id)
			if err != nil {
				return err
			}
			updated += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) ListPendingOlderThan(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	cutoff := time.Now().Add(-age)
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status='Pending' AND created_at <= $1
              ORDER BY created_at
              LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) UpdateFulfillment(ctx context.Context, id string, from, to model.OrderStatus) error {
	const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, update, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		const check = `SELECT status FROM orders WHERE id=$1`
		var current model.OrderStatus
		if err := r.storage.pool.QueryRow(ctx, check, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return domainErrors.ErrInvalidTransition
	}
	return nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	const query = `INSERT INTO products (id, sku, name, price_minor, currency, stock)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, product.ID, product.SKU, product.Name, product.PriceMinor, product.Currency, product.Stock).
		Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, sku, name, price_minor, currency, stock, created_at, updated_at
                   FROM products ORDER BY sku`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.PriceMinor, &p.Currency, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT id, sku, name, price_minor, currency, stock, created_at, updated_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.SKU, &p.Name, &p.PriceMinor, &p.Currency, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
