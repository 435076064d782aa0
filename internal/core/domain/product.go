package domain

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Defaults applied by catalog normalization.
const (
	DefaultProductName        = "Unnamed Product"
	DefaultProductDescription = "No description available"
	DefaultProductImage       = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3"
)

var ErrInvalidProduct = errors.New("invalid product")

// Product is a fully populated catalog entry. Every Product handed to a view
// has all five fields set.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// WithDefaults fills the optional display fields. ID and Price are left
// untouched; Validate reports whether they are usable.
func (p Product) WithDefaults() Product {
	if p.Name == "" {
		p.Name = DefaultProductName
	}
	if p.Description == "" {
		p.Description = DefaultProductDescription
	}
	if p.Image == "" {
		p.Image = DefaultProductImage
	}
	return p
}

// Validate reports whether p satisfies the normalized-product invariant.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return errors.Join(ErrInvalidProduct, errors.New("id is required"))
	case math.IsNaN(p.Price) || math.IsInf(p.Price, 0):
		return errors.Join(ErrInvalidProduct, errors.New("price must be a finite number"))
	case p.Price < 0:
		return errors.Join(ErrInvalidProduct, errors.New("price must not be negative"))
	case p.Name == "" || p.Description == "" || p.Image == "":
		return errors.Join(ErrInvalidProduct, errors.New("display fields must be populated"))
	}
	return nil
}

// FormatPrice renders a price with two decimals, e.g. 899.98 → "899.98".
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(price).StringFixed(2)
}

// FallbackCatalog returns the fixed sample products shown when the remote
// catalog cannot be loaded. A fresh slice is returned on every call.
func FallbackCatalog() []Product {
	return []Product{
		{
			ID:          "sample-1",
			Name:        "Smartphone",
			Price:       699.99,
			Description: "Latest model smartphone with advanced features",
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		{
			ID:          "sample-2",
			Name:        "Laptop",
			Price:       1299.99,
			Description: "High-performance laptop for work and gaming",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3",
		},
		{
			ID:          "sample-3",
			Name:        "Headphones",
			Price:       199.99,
			Description: "Wireless noise-canceling headphones",
			Image:       DefaultProductImage,
		},
	}
}
