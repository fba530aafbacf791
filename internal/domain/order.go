package domain

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is immutable from this layer's perspective once placed; status
// transitions are server-driven and admin-mutable only.
type Order struct {
	OrderID       int64       `json:"orderId"`
	PublicOrderID string      `json:"publicOrderId,omitempty"`
	FullName      string      `json:"fullName"`
	Mobile        string      `json:"mobile"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	Pincode       string      `json:"pincode"`
	PaymentMode   PaymentMode `json:"paymentMode"`
	Status        OrderStatus `json:"status"`
	TotalAmount   float64     `json:"totalAmount"`
	OrderDate     string      `json:"orderDate,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}
