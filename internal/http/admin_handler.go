package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

// CatalogAdmin is the catalog mutation capability exposed to the admin
// surface only.
type CatalogAdmin interface {
	AllProducts(ctx context.Context) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeactivateProduct(ctx context.Context, id int64) error
}

type AdminHandler struct {
	catalog CatalogAdmin
	timeout time.Duration
}

func NewAdminHandler(catalog CatalogAdmin, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductRequestDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	IsFeatured  bool            `json:"is_featured"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.AllProducts(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	p := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		IsActive:    true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.catalog.CreateProduct(ctx, p); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p := &domain.Product{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		IsActive:    true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.catalog.UpdateProduct(ctx, p); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeactivateProduct(ctx, productID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"id": productID, "is_active": false})
}
