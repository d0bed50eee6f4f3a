package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderPaid          = "order.paid"
	EventOrderPaymentFailed = "order.payment_failed"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const productColumns = `id, name, description, price, image_url, is_featured, is_active, created_at, updated_at`

func scanProduct(s interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.IsFeatured,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetActiveProducts(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY name`
	return r.queryProducts(ctx, query)
}

func (r *Repository) GetFeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active AND is_featured ORDER BY name LIMIT $1`
	return r.queryProducts(ctx, query, limit)
}

func (r *Repository) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	return r.queryProducts(ctx, query)
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return p, nil
}

func (r *Repository) GetProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	return r.queryProducts(ctx, query, pq.Array(ids))
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, price, image_url, is_featured, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	          RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Name,
		p.Description,
		p.Price,
		p.ImageURL,
		p.IsFeatured,
		p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products
	          SET name = $2, description = $3, price = $4, image_url = $5, is_featured = $6, is_active = $7, updated_at = NOW()
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.ImageURL,
		p.IsFeatured,
		p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireOneRow(res, ErrProductNotFound)
}

func (r *Repository) DeactivateProduct(ctx context.Context, id int64) error {
	query := `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return requireOneRow(res, ErrProductNotFound)
}

func requireOneRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return missing
	}
	return nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (id, gateway_order_id, customer_name, customer_email, customer_address,
	                              total_amount, currency, payment_method, status, items, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`

	_, insertErr := tx.ExecContext(ctx, query,
		order.ID,
		nullableString(order.GatewayOrderID),
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerAddress,
		order.TotalAmount,
		order.Currency,
		order.Method,
		order.Status,
		itemsJSON)

	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateGatewayOrder
		}
		return fmt.Errorf("insert order: %w", insertErr)
	}

	if err := insertOutboxEvent(ctx, tx, order, EventOrderPlaced); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func insertOutboxEvent(ctx context.Context, tx *sql.Tx, order *domain.Order, eventType string) error {
	payload := map[string]any{
		"order_id":       order.ID,
		"total_amount":   order.TotalAmount,
		"currency":       order.Currency,
		"payment_method": order.Method,
		"status":         order.Status,
		"items":          order.Items,
	}
	if order.PaymentID != "" {
		payload["payment_id"] = order.PaymentID
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	query := `INSERT INTO order_outbox (aggregate_id, event_type, payload) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, order.ID, eventType, payloadJSON); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

const orderColumns = `id, COALESCE(gateway_order_id, ''), COALESCE(payment_id, ''), customer_name, customer_email,
	customer_address, total_amount, currency, payment_method, status, items, created_at, updated_at`

func scanOrder(s interface{ Scan(...any) error }) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte
	err := s.Scan(
		&order.ID,
		&order.GatewayOrderID,
		&order.PaymentID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerAddress,
		&order.TotalAmount,
		&order.Currency,
		&order.Method,
		&order.Status,
		&itemsJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *Repository) GetOrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_order_id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, gatewayOrderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by gateway order id: %w", err)
	}
	return order, nil
}

func (r *Repository) MarkOrderAwaitingPayment(ctx context.Context, id uuid.UUID, gatewayOrderID string) error {
	query := `UPDATE orders SET gateway_order_id = $2, status = $3, updated_at = NOW()
	          WHERE id = $1 AND status = $4`

	res, err := r.db.ExecContext(ctx, query, id, gatewayOrderID, domain.PaymentStatusAwaitingPayment, domain.PaymentStatusInitiated)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateGatewayOrder
		}
		return fmt.Errorf("mark order awaiting payment: %w", err)
	}
	return requireOneRow(res, ErrStatusConflict)
}

func (r *Repository) MarkOrderPaid(ctx context.Context, id uuid.UUID, paymentID string) error {
	return r.transitionOrder(ctx, id, domain.PaymentStatusPaid, paymentID, EventOrderPaid)
}

func (r *Repository) MarkOrderPaymentFailed(ctx context.Context, id uuid.UUID) error {
	return r.transitionOrder(ctx, id, domain.PaymentStatusPaymentFailed, "", EventOrderPaymentFailed)
}

// transitionOrder moves an order out of AWAITING_PAYMENT. The WHERE clause on
// the current status makes the transition happen at most once even under
// concurrent callbacks.
func (r *Repository) transitionOrder(ctx context.Context, id uuid.UUID, to domain.PaymentStatus, paymentID, eventType string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE orders SET status = $2, payment_id = COALESCE($3, payment_id), updated_at = NOW()
	          WHERE id = $1 AND status = $4
	          RETURNING total_amount, currency, payment_method, items`

	var totalAmount decimal.Decimal
	var currency string
	var method domain.PaymentMethod
	var itemsJSON []byte
	scanErr := tx.QueryRowContext(ctx, query, id, to, nullableString(paymentID), domain.PaymentStatusAwaitingPayment).
		Scan(&totalAmount, &currency, &method, &itemsJSON)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return ErrStatusConflict
	}
	if scanErr != nil {
		return fmt.Errorf("transition order: %w", scanErr)
	}

	order := &domain.Order{
		ID:          id,
		PaymentID:   paymentID,
		TotalAmount: totalAmount,
		Currency:    currency,
		Method:      method,
		Status:      to,
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return fmt.Errorf("unmarshal order items: %w", err)
	}

	if err := insertOutboxEvent(ctx, tx, order, eventType); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transition: %w", err)
	}
	return nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at
	          FROM order_outbox WHERE NOT processed ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		ev := &OutboxEvent{}
		if err := rows.Scan(&ev.ID, &ev.AggregateID, &ev.EventType, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, eventID int64) error {
	query := `UPDATE order_outbox SET processed = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, eventID); err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	return nil
}

var _ ProductReader = (*Repository)(nil)
var _ ProductAdmin = (*Repository)(nil)
var _ OrderRepository = (*Repository)(nil)
