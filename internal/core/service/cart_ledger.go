package service

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shophub/storefront/internal/core/domain"
)

// CartLedger is the ordered cart. Entries keep insertion order and the same
// product may appear more than once.
type CartLedger struct {
	log zerolog.Logger

	mu    sync.Mutex
	items []domain.Product
}

func NewCartLedger(log zerolog.Logger) *CartLedger {
	return &CartLedger{log: log}
}

// Add appends product. Display fields are defaulted; a product without an id
// or with an unusable price is rejected and the ledger is left unchanged.
func (c *CartLedger) Add(product domain.Product) error {
	product = product.WithDefaults()
	if err := product.Validate(); err != nil {
		return fmt.Errorf("cart add: %w", err)
	}

	c.mu.Lock()
	c.items = append(c.items, product)
	n := len(c.items)
	c.mu.Unlock()

	c.log.Debug().Str("op", "cart_add").Str("product_id", product.ID).Int("count", n).Msg("item added")
	return nil
}

// Remove drops every entry whose id is productID and returns the remaining
// entries. An unknown id leaves the ledger as it was.
func (c *CartLedger) Remove(productID string) []domain.Product {
	c.mu.Lock()
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(p domain.Product) bool {
		return p.ID == productID
	})
	removed := before - len(c.items)
	out := slices.Clone(c.items)
	c.mu.Unlock()

	if removed > 0 {
		c.log.Debug().Str("op", "cart_remove").Str("product_id", productID).Int("removed", removed).Msg("items removed")
	}
	return nonNil(out)
}

// Items returns a copy of the current entries in insertion order.
func (c *CartLedger) Items() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return nonNil(slices.Clone(c.items))
}

// Total is the sum of prices over all entries, 0 for an empty cart. The sum
// is taken in decimal so 699.99 + 199.99 is exactly 899.98.
func (c *CartLedger) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *CartLedger) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Snapshot returns the entries, their total and emptiness read under one
// lock, so the three always agree.
func (c *CartLedger) Snapshot() domain.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CartSnapshot{
		Items: nonNil(slices.Clone(c.items)),
		Total: c.totalLocked(),
		Empty: len(c.items) == 0,
	}
}

// totalLocked must be called with c.mu held.
func (c *CartLedger) totalLocked() float64 {
	sum := decimal.Zero
	for _, p := range c.items {
		sum = sum.Add(decimal.NewFromFloat(p.Price))
	}
	return sum.InexactFloat64()
}

func nonNil(items []domain.Product) []domain.Product {
	if items == nil {
		return []domain.Product{}
	}
	return items
}
