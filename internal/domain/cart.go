package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart lives only in the session store. It is never written to the database.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// PricedCart is the cart joined against live catalog prices. Lines whose
// product no longer resolves to an active record are left out.
type PricedCart struct {
	Items     []PricedCartItem `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	ItemCount int              `json:"item_count"`
}

type PricedCartItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}
