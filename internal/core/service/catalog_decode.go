package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/shophub/storefront/internal/core/domain"
)

var errMalformedCatalog = errors.New("catalog body is not valid JSON")

// catalogShape names which envelope a catalog body was recognised as.
type catalogShape int

const (
	shapeUnknown catalogShape = iota
	shapeBare                 // [ {...}, ... ]
	shapeWrapped              // { "products": [ {...}, ... ] }
)

func (s catalogShape) String() string {
	switch s {
	case shapeBare:
		return "bare"
	case shapeWrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

// decodeCatalog extracts the raw product records from body. An unknown shape
// yields no records and no error; only invalid JSON is an error.
func decodeCatalog(body []byte) ([]gjson.Result, catalogShape, error) {
	if !gjson.ValidBytes(body) {
		return nil, shapeUnknown, errMalformedCatalog
	}

	root := gjson.ParseBytes(body)
	if root.IsArray() {
		return root.Array(), shapeBare, nil
	}
	if root.IsObject() {
		if products := root.Get("products"); products.IsArray() {
			return products.Array(), shapeWrapped, nil
		}
	}
	return nil, shapeUnknown, nil
}

// normalizeProducts turns raw records into Products. batch identifies this
// load and is only used to synthesise ids for records without one.
func normalizeProducts(records []gjson.Result, batch int64) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	for i, raw := range records {
		products = append(products, normalizeProduct(raw, batch, i))
	}
	return products
}

func normalizeProduct(raw gjson.Result, batch int64, index int) domain.Product {
	p := domain.Product{
		ID:          recordID(raw),
		Name:        nonEmptyString(raw.Get("name")),
		Price:       recordPrice(raw.Get("price")),
		Description: nonEmptyString(raw.Get("description")),
		Image:       nonEmptyString(raw.Get("image")),
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("generated-%d-%d", batch, index)
	}
	return p.WithDefaults()
}

// recordID reads "_id", then "id". Numeric ids are kept in their JSON form.
func recordID(raw gjson.Result) string {
	for _, key := range []string{"_id", "id"} {
		v := raw.Get(key)
		switch v.Type {
		case gjson.String:
			if v.Str != "" {
				return v.Str
			}
		case gjson.Number:
			if v.Num != 0 {
				return v.Raw
			}
		}
	}
	return ""
}

func recordPrice(v gjson.Result) float64 {
	if v.Type != gjson.Number {
		return 0
	}
	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func nonEmptyString(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return ""
}
