package ports

import (
	"context"

	"github.com/shophub/storefront/internal/core/domain"
)

// SessionReader is the read-only view of the session used by the guard and
// the catalog loader.
type SessionReader interface {
	IsAuthenticated() bool
	Current() (*domain.Session, bool)
}

// SessionService is the sign-in surface exposed to views.
type SessionService interface {
	SessionReader
	SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	SignUp(ctx context.Context, profile domain.Profile) (string, error)
	SignOut()
}

// CatalogService loads the catalog for one view mount.
type CatalogService interface {
	Load(ctx context.Context) domain.CatalogState
}

// CartService is the cart surface exposed to views.
type CartService interface {
	Add(product domain.Product) error
	Remove(productID string) []domain.Product
	Items() []domain.Product
	Total() float64
	IsEmpty() bool
	Snapshot() domain.CartSnapshot
}

// IdempotencyStore remembers request keys for a bounded time. Claim reports
// true the first time a key is seen. Release forgets a claimed key so the
// request can be retried.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
