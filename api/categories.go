package api

import (
	"context"
	"net/http"
	"strconv"
)

// ListCategories returns every category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	_, err := c.do(ctx, "list categories", http.MethodGet, "/categories", nil, nil, &out)
	return out, err
}

// GetCategory returns the category with the given id.
func (c *Client) GetCategory(ctx context.Context, id int) (Category, error) {
	var out Category
	_, err := c.do(ctx, "get category", http.MethodGet, "/categories/"+strconv.Itoa(id), nil, nil, &out)
	return out, err
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, cat NewCategory) (Category, error) {
	var out Category
	_, err := c.do(ctx, "create category", http.MethodPost, "/categories", nil, cat, &out)
	return out, err
}
