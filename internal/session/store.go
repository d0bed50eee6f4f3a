package session

import (
	"context"
	"errors"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

// CartStore keeps carts in per-session storage, decoupled from the session
// mechanics of any particular backend.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCartNotFound = errors.New("cart not found")
