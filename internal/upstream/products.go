package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

type ListParams struct {
	Page   int
	Size   int
	Search string
	Sort   string
}

func (p ListParams) query() url.Values {
	if p.Size <= 0 {
		p.Size = 10
	}
	if p.Sort == "" {
		p.Sort = "id,desc"
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("size", strconv.Itoa(p.Size))
	q.Set("sort", p.Sort)
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

func (c *Client) Products(ctx context.Context, p ListParams) (*domain.ProductPage, error) {
	var page domain.ProductPage
	if err := c.do(ctx, http.MethodGet, "/api/products", p.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminProducts lists products including ones hidden from the public
// catalog. Requires an ADMIN token.
func (c *Client) AdminProducts(ctx context.Context, p ListParams) (*domain.ProductPage, error) {
	var page domain.ProductPage
	if err := c.do(ctx, http.MethodGet, "/api/products/admin", p.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var products []domain.Product
	path := "/api/products/category/" + url.PathEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, product domain.Product) (*domain.Product, error) {
	var updated domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), nil, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}
