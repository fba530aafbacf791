package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

func (c *Client) Cart(ctx context.Context) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) error {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("quantity", strconv.Itoa(quantity))
	return c.do(ctx, http.MethodPost, "/api/cart/add", q, nil, nil)
}

func (c *Client) UpdateCartQuantity(ctx context.Context, cartID int64, quantity int) error {
	q := url.Values{}
	q.Set("quantity", strconv.Itoa(quantity))
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/%d", cartID), q, nil, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, cartID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d", cartID), nil, nil, nil)
}
