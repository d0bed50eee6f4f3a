package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

// CartService is the session-cart surface the handlers call into.
type CartService interface {
	AddItem(ctx context.Context, sessionID string, productID int64, quantity int) error
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) error
	RemoveItem(ctx context.Context, sessionID string, productID int64) error
	Clear(ctx context.Context, sessionID string) error
	GetCart(ctx context.Context, sessionID string) (*domain.PricedCart, error)
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
}

func NewCartHandler(carts CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type QuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	priced, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, priced)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	// body is optional; a bare POST adds one unit
	quantity := 1
	if r.Body != nil && r.ContentLength != 0 {
		var req QuantityRequestDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
		quantity = req.Quantity
	}

	if err := h.carts.AddItem(ctx, sessionID, productID, quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	h.respondWithCart(ctx, w, sessionID, http.StatusCreated)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req QuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.carts.UpdateQuantity(ctx, sessionID, productID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	h.respondWithCart(ctx, w, sessionID, http.StatusOK)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(ctx, sessionID, productID); err != nil {
		handleServiceError(w, err)
		return
	}

	h.respondWithCart(ctx, w, sessionID, http.StatusOK)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	if err := h.carts.Clear(ctx, sessionID); err != nil {
		handleServiceError(w, err)
		return
	}

	h.respondWithCart(ctx, w, sessionID, http.StatusOK)
}

func (h *CartHandler) respondWithCart(ctx context.Context, w http.ResponseWriter, sessionID string, status int) {
	priced, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, status, priced)
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "productID")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return 0, false
	}
	return productID, true
}
