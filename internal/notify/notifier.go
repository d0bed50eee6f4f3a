package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

// Notifier announces confirmed orders. Delivery is best effort: a failed
// send never fails or rolls back the checkout that triggered it.
type Notifier interface {
	OrderConfirmed(order *domain.Order)
}

var methodLabels = map[domain.PaymentMethod]string{
	domain.PaymentMethodCOD:    "Cash on Delivery",
	domain.PaymentMethodOnline: "Online Payment (UPI / Debit Card / Credit Card)",
}

type SMTPNotifier struct {
	addr string
	from string
	to   string
	auth smtp.Auth
}

func NewSMTPNotifier(addr, from, to string, auth smtp.Auth) *SMTPNotifier {
	return &SMTPNotifier{
		addr: addr,
		from: from,
		to:   to,
		auth: auth,
	}
}

func (n *SMTPNotifier) OrderConfirmed(order *domain.Order) {
	msg := buildMessage(n.from, n.to, order)
	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{n.to}, msg); err != nil {
		log.Printf("order notification failed for order %s: %v", order.ID, err)
	}
}

func buildMessage(from, to string, order *domain.Order) []byte {
	subject := fmt.Sprintf("New Order Placed: %s", order.CustomerName)

	lines := []string{
		"A new order has been placed on E-Coomarse.",
		fmt.Sprintf("Order ID: %s", order.ID),
		fmt.Sprintf("Customer Name: %s", orDefault(order.CustomerName, "Guest")),
		fmt.Sprintf("Customer Email: %s", orDefault(order.CustomerEmail, "N/A")),
		fmt.Sprintf("Total Amount: %s %s", order.Currency, order.TotalAmount.StringFixed(2)),
		fmt.Sprintf("Payment Method: %s", methodLabels[order.Method]),
	}
	if order.PaymentID != "" {
		lines = append(lines, fmt.Sprintf("Payment ID: %s", order.PaymentID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("\r\n")
	b.WriteString(strings.Join(lines, "\n"))
	return []byte(b.String())
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// NopNotifier is used when no notification recipient is configured.
type NopNotifier struct{}

func (NopNotifier) OrderConfirmed(*domain.Order) {}
