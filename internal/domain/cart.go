package domain

// CartLine is one product entry in the shopper's in-progress order.
// TotalPrice is kept equal to Quantity * UnitPrice locally; the server
// holds the authoritative value.
type CartLine struct {
	CartID      int64   `json:"cartId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"price"`
	TotalPrice  float64 `json:"totalPrice"`
}
