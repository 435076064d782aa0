package ports

import (
	"context"

	"github.com/shophub/storefront/internal/core/domain"
)

// ProductRepository serves catalog records for the stand-in upstream.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// Seed inserts products when the collection is empty and reports how many
	// were written.
	Seed(ctx context.Context, products []domain.Product) (int, error)
}
