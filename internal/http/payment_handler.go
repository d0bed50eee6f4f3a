package http

import (
	"context"
	"log"
	"net/http"
	"time"
)

// CartClearer lets the verify handler drop the session cart once the payment
// is confirmed. Clearing is best effort.
type CartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

type PaymentHandler struct {
	service CheckoutService
	carts   CartClearer
	timeout time.Duration
}

func NewPaymentHandler(service CheckoutService, carts CartClearer, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		carts:   carts,
		timeout: timeout,
	}
}

// Verify receives the gateway callback. The hosted payment page posts the
// fields as a form, so form encoding is accepted alongside nothing else.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return
	}

	gatewayOrderID := r.PostFormValue("order_id")
	paymentID := r.PostFormValue("payment_id")
	signature := r.PostFormValue("signature")

	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "order_id, payment_id and signature are required")
		return
	}

	order, err := h.service.VerifyPayment(ctx, gatewayOrderID, paymentID, signature)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if sessionID := getSessionID(r.Context()); sessionID != "" {
		if errClear := h.carts.Clear(ctx, sessionID); errClear != nil {
			log.Printf("failed to clear cart after payment for session %s: %v", sessionID, errClear)
		}
	}

	respondJSON(w, http.StatusOK, order)
}
