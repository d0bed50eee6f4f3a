package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

type PaymentStatus string

const (
	PaymentStatusInitiated       PaymentStatus = "INITIATED"
	PaymentStatusAwaitingPayment PaymentStatus = "AWAITING_PAYMENT"
	PaymentStatusPaid            PaymentStatus = "PAID"
	PaymentStatusPaymentFailed   PaymentStatus = "PAYMENT_FAILED"
	PaymentStatusCashOnDelivery  PaymentStatus = "CASH_ON_DELIVERY"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusPaymentFailed || s == PaymentStatusCashOnDelivery
}

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}

var allowedTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusInitiated:       {PaymentStatusAwaitingPayment, PaymentStatusCashOnDelivery},
	PaymentStatusAwaitingPayment: {PaymentStatusPaid, PaymentStatusPaymentFailed},
}

// CanTransitionTo reports whether an order may move from one payment status
// to another. Terminal statuses have no outgoing transitions, so a verified
// order can never be regressed by a late or replayed callback.
func CanTransitionTo(from, to PaymentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Order snapshots the cart at checkout time. Items and total are immutable
// once written; only the payment status column moves afterwards.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	GatewayOrderID  string          `json:"gateway_order_id,omitempty"`
	PaymentID       string          `json:"payment_id,omitempty"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerAddress string          `json:"customer_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	Method          PaymentMethod   `json:"payment_method"`
	Status          PaymentStatus   `json:"status"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
