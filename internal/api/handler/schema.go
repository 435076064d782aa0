package handler

import (
	"encoding/json"

	"github.com/shophub/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Session ---

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	DOB      string `json:"dob"      validate:"required,datetime=2006-01-02"`
	Password string `json:"password" validate:"required,min=6"`
}

type signInResponse struct {
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	Claims        map[string]any `json:"claims,omitempty"`
}

// --- Catalog ---

type catalogResponse struct {
	Status   domain.CatalogStatus `json:"status"`
	Products []domain.Product     `json:"products"`
	Error    string               `json:"error,omitempty"`
}

// --- Cart ---

// addItemRequest is a product record as shown in the catalog. Display fields
// left empty receive the catalog defaults before the item is added.
type addItemRequest struct {
	ID          string   `json:"id"          validate:"required"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Description string   `json:"description"`
	Image       string   `json:"image"       validate:"omitempty,url"`
}

func (r addItemRequest) toProduct() domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p.WithDefaults()
}

type cartResponse struct {
	Items        []domain.Product `json:"items"`
	Total        float64          `json:"total"`
	TotalDisplay string           `json:"total_display"`
	Empty        bool             `json:"empty"`
}
