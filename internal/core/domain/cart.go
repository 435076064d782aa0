package domain

// CartSnapshot is the cart as seen at one instant. Total is always the sum
// of Items' prices and Empty is true exactly when Items is empty.
type CartSnapshot struct {
	Items []Product
	Total float64
	Empty bool
}
