package domain

// Product mirrors a catalog record as returned by the upstream API.
// Fields not listed here (rating, etc.) are dropped on decode.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// CartItem is a product plus the quantity held in the cart. It encodes flat,
// so a persisted line looks like a product with an extra "quantity" field.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
