package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/notify"
	"github.com/Aniket760/E-Coomarse/internal/payment"
	"github.com/Aniket760/E-Coomarse/internal/repository"
)

// CartReader is the slice of the cart service the orchestrator consumes.
type CartReader interface {
	Lines(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Clear(ctx context.Context, sessionID string) error
}

type CheckoutRequest struct {
	SessionID       string
	Method          domain.PaymentMethod
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
}

// PaymentIntent carries what the hosted payment page needs to collect the
// charge and call back into /payment/verify/.
type PaymentIntent struct {
	GatewayKeyID   string `json:"gateway_key_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	AmountSubunits int64  `json:"amount_subunits"`
	Currency       string `json:"currency"`
	VerifyPath     string `json:"verify_path"`
}

type CheckoutResult struct {
	Order   *domain.Order  `json:"order"`
	Payment *PaymentIntent `json:"payment,omitempty"`
}

const VerifyPath = "/payment/verify/"

// Service owns order creation and is the sole writer of payment status.
// gateway may be nil when credentials are absent; the cash-on-delivery path
// does not touch it.
type Service struct {
	products repository.ProductReader
	orders   repository.OrderRepository
	carts    CartReader
	gateway  payment.Gateway
	notifier notify.Notifier
	currency string
}

func NewService(
	products repository.ProductReader,
	orders repository.OrderRepository,
	carts CartReader,
	gateway payment.Gateway,
	notifier notify.Notifier,
	currency string,
) *Service {
	return &Service{
		products: products,
		orders:   orders,
		carts:    carts,
		gateway:  gateway,
		notifier: notifier,
		currency: currency,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if !req.Method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	lines, err := s.carts.Lines(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items, total, err := s.snapshot(ctx, lines)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		TotalAmount:     total,
		Currency:        s.currency,
		Method:          req.Method,
		Items:           items,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if req.Method == domain.PaymentMethodCOD {
		return s.createCODOrder(ctx, req.SessionID, order)
	}
	return s.createOnlineOrder(ctx, order)
}

// snapshot prices every cart line against the live catalog. Unlike the cart
// view, checkout refuses a cart with stale lines instead of skipping them:
// the customer must see the cart change before any order is written.
func (s *Service) snapshot(ctx context.Context, lines []domain.CartItem) ([]domain.OrderItem, decimal.Decimal, error) {
	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("fetch checkout products: %w", err)
	}

	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok || !p.IsActive {
			return nil, decimal.Zero, ErrPriceMismatch
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return items, total, nil
}

func (s *Service) createCODOrder(ctx context.Context, sessionID string, order *domain.Order) (*CheckoutResult, error) {
	order.Status = domain.PaymentStatusCashOnDelivery

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("failed to clear cart for session %s: %v", sessionID, err)
	}

	s.notifier.OrderConfirmed(order)

	return &CheckoutResult{Order: order}, nil
}

func (s *Service) createOnlineOrder(ctx context.Context, order *domain.Order) (*CheckoutResult, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: online payment is not configured", ErrGatewayUnavailable)
	}

	order.Status = domain.PaymentStatusInitiated
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	amountSubunits := order.TotalAmount.Shift(2).IntPart()
	receipt := fmt.Sprintf("order_%s", order.ID)

	gatewayOrderID, err := s.gateway.CreateGatewayOrder(ctx, amountSubunits, order.Currency, receipt)
	if err != nil {
		// the order stays INITIATED: nothing was charged, manual retry is possible
		log.Printf("gateway order creation failed for order %s: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if err := s.orders.MarkOrderAwaitingPayment(ctx, order.ID, gatewayOrderID); err != nil {
		return nil, fmt.Errorf("bind gateway order: %w", err)
	}
	order.GatewayOrderID = gatewayOrderID
	order.Status = domain.PaymentStatusAwaitingPayment

	return &CheckoutResult{
		Order: order,
		Payment: &PaymentIntent{
			GatewayKeyID:   s.gateway.KeyID(),
			GatewayOrderID: gatewayOrderID,
			AmountSubunits: amountSubunits,
			Currency:       order.Currency,
			VerifyPath:     VerifyPath,
		},
	}, nil
}
