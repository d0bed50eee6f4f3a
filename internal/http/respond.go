package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/catalog"
	"github.com/Aniket760/E-Coomarse/internal/checkout"
	"github.com/Aniket760/E-Coomarse/internal/repository"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service errors onto HTTP responses. The signature
// failure response never says why verification failed.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidProduct):
		respondError(w, http.StatusBadRequest, "invalid_product", "product does not exist or is not active")
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "your cart is empty")
	case errors.Is(err, checkout.ErrPriceMismatch):
		respondError(w, http.StatusConflict, "price_mismatch", "some cart items are no longer available, please review your cart")
	case errors.Is(err, checkout.ErrInvalidPaymentMethod):
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "please select a valid payment method")
	case errors.Is(err, checkout.ErrGatewayUnavailable):
		respondError(w, http.StatusServiceUnavailable, "gateway_unavailable", "online payment is currently unavailable")
	case errors.Is(err, checkout.ErrInvalidSignature):
		respondError(w, http.StatusBadRequest, "invalid_signature", "payment verification failed")
	case errors.Is(err, checkout.IllegalTransitionError):
		respondError(w, http.StatusConflict, "status_conflict", "order is not in a payable state")
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, catalog.ErrInvalidPrice):
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be non-negative")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
