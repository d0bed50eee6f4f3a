package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrDuplicateGatewayOrder = errors.New("order for this gateway order already exists")
	ErrStatusConflict        = errors.New("order is not in the expected status")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// ProductReader is what the storefront and checkout depend on.
type ProductReader interface {
	GetActiveProducts(ctx context.Context) ([]*domain.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
}

// ProductAdmin is the catalog mutation capability. Only the admin surface
// holds a reference to it.
type ProductAdmin interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeactivateProduct(ctx context.Context, id int64) error
}

type OutboxEvent struct {
	ID          int64
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

type OrderRepository interface {
	// CreateOrder writes the order and its order.placed outbox event in a
	// single transaction.
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	// MarkOrderAwaitingPayment transitions INITIATED -> AWAITING_PAYMENT and
	// binds the gateway order id. Returns ErrStatusConflict when the order
	// already left INITIATED.
	MarkOrderAwaitingPayment(ctx context.Context, id uuid.UUID, gatewayOrderID string) error
	// MarkOrderPaid transitions AWAITING_PAYMENT -> PAID and records the
	// payment id, emitting an order.paid outbox event in the same
	// transaction. Returns ErrStatusConflict when the order is not awaiting
	// payment.
	MarkOrderPaid(ctx context.Context, id uuid.UUID, paymentID string) error
	// MarkOrderPaymentFailed transitions AWAITING_PAYMENT -> PAYMENT_FAILED.
	// Returns ErrStatusConflict when the order is not awaiting payment.
	MarkOrderPaymentFailed(ctx context.Context, id uuid.UUID) error
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, eventID int64) error
}
