package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Aniket760/E-Coomarse/internal/checkout"
	"github.com/Aniket760/E-Coomarse/internal/domain"
)

// CheckoutService is the orchestrator surface the handlers call into.
type CheckoutService interface {
	CreateOrder(ctx context.Context, req *checkout.CheckoutRequest) (*checkout.CheckoutResult, error)
	VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) (*domain.Order, error)
}

type CheckoutHandler struct {
	service CheckoutService
	timeout time.Duration
}

func NewCheckoutHandler(service CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	PaymentMethod string `json:"payment_method"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.service.CreateOrder(ctx, &checkout.CheckoutRequest{
		SessionID:       sessionID,
		Method:          domain.PaymentMethod(req.PaymentMethod),
		CustomerName:    req.Name,
		CustomerEmail:   req.Email,
		CustomerAddress: req.Address,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
