package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

// Checkout places a cash-on-delivery order from the server-side cart
// snapshot plus the shipping form.
func (c *Client) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders/checkout", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Invoice downloads the order's invoice document as-is. The bytes and
// content type are passed through without interpretation.
func (c *Client) Invoice(ctx context.Context, orderID int64) ([]byte, string, error) {
	return c.raw(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d/invoice", orderID))
}

// AllOrders lists every order across customers. Requires an ADMIN token.
func (c *Client) AllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/all", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/orders/%d/status", orderID)
	if err := c.do(ctx, http.MethodPut, path, nil, updateStatusRequest{Status: status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
