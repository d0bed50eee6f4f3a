package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/payment"
	"github.com/Aniket760/E-Coomarse/internal/repository"
)

// MockOrderRepo implements repository.OrderRepository for testing
type MockOrderRepo struct {
	Orders       map[uuid.UUID]*domain.Order
	ByGatewayID  map[string]uuid.UUID
	CreateErr    error
	MarkPaidErr  error
	CreatedOrder *domain.Order
	PaidID       *uuid.UUID
	FailedID     *uuid.UUID
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		Orders:      make(map[uuid.UUID]*domain.Order),
		ByGatewayID: make(map[string]uuid.UUID),
	}
}

func (m *MockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.CreatedOrder = order
	copied := *order
	m.Orders[order.ID] = &copied
	return nil
}

func (m *MockOrderRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *MockOrderRepo) GetOrderByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.Order, error) {
	id, ok := m.ByGatewayID[gatewayOrderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *m.Orders[id]
	return &copied, nil
}

func (m *MockOrderRepo) MarkOrderAwaitingPayment(_ context.Context, id uuid.UUID, gatewayOrderID string) error {
	order, ok := m.Orders[id]
	if !ok || order.Status != domain.PaymentStatusInitiated {
		return repository.ErrStatusConflict
	}
	order.Status = domain.PaymentStatusAwaitingPayment
	order.GatewayOrderID = gatewayOrderID
	m.ByGatewayID[gatewayOrderID] = id
	return nil
}

func (m *MockOrderRepo) MarkOrderPaid(_ context.Context, id uuid.UUID, paymentID string) error {
	if m.MarkPaidErr != nil {
		return m.MarkPaidErr
	}
	order, ok := m.Orders[id]
	if !ok || order.Status != domain.PaymentStatusAwaitingPayment {
		return repository.ErrStatusConflict
	}
	order.Status = domain.PaymentStatusPaid
	order.PaymentID = paymentID
	m.PaidID = &id
	return nil
}

func (m *MockOrderRepo) MarkOrderPaymentFailed(_ context.Context, id uuid.UUID) error {
	order, ok := m.Orders[id]
	if !ok || order.Status != domain.PaymentStatusAwaitingPayment {
		return repository.ErrStatusConflict
	}
	order.Status = domain.PaymentStatusPaymentFailed
	m.FailedID = &id
	return nil
}

func (m *MockOrderRepo) GetUnprocessedEvents(context.Context, int) ([]*repository.OutboxEvent, error) {
	return nil, nil
}

func (m *MockOrderRepo) MarkEventAsProcessed(context.Context, int64) error {
	return nil
}

// MockCartReader implements CartReader for testing
type MockCartReader struct {
	Items      []domain.CartItem
	LinesErr   error
	ClearedFor []string
}

func (m *MockCartReader) Lines(_ context.Context, _ string) ([]domain.CartItem, error) {
	return m.Items, m.LinesErr
}

func (m *MockCartReader) Clear(_ context.Context, sessionID string) error {
	m.ClearedFor = append(m.ClearedFor, sessionID)
	return nil
}

// MockProducts implements repository.ProductReader for testing
type MockProducts struct {
	Products map[int64]*domain.Product
	Err      error
}

func NewMockProducts(products ...*domain.Product) *MockProducts {
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MockProducts{Products: byID}
}

func (m *MockProducts) GetActiveProducts(context.Context) ([]*domain.Product, error) {
	return nil, m.Err
}

func (m *MockProducts) GetFeaturedProducts(context.Context, int) ([]*domain.Product, error) {
	return nil, m.Err
}

func (m *MockProducts) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *MockProducts) GetProductsByIDs(_ context.Context, ids []int64) ([]*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := m.Products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockGateway implements payment.Gateway for testing
type MockGateway struct {
	OrderID   string
	CreateErr error
	Secret    string
	Calls     int
}

func (m *MockGateway) CreateGatewayOrder(_ context.Context, _ int64, _, _ string) (string, error) {
	m.Calls++
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	return m.OrderID, nil
}

func (m *MockGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return payment.VerifySignature(gatewayOrderID, paymentID, signature, m.Secret)
}

func (m *MockGateway) KeyID() string {
	return "key_test"
}

// RecordingNotifier counts confirmations
type RecordingNotifier struct {
	Confirmed []*domain.Order
}

func (n *RecordingNotifier) OrderConfirmed(order *domain.Order) {
	n.Confirmed = append(n.Confirmed, order)
}
