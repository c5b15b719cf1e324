package api

import (
	"context"
	"net/http"
	"strconv"
)

// ListTags returns every tag.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var out []Tag
	_, err := c.do(ctx, "list tags", http.MethodGet, "/tags", nil, nil, &out)
	return out, err
}

// GetTag returns the tag with the given id.
func (c *Client) GetTag(ctx context.Context, id int) (Tag, error) {
	var out Tag
	_, err := c.do(ctx, "get tag", http.MethodGet, "/tags/"+strconv.Itoa(id), nil, nil, &out)
	return out, err
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, tag NewTag) (Tag, error) {
	var out Tag
	_, err := c.do(ctx, "create tag", http.MethodPost, "/tags", nil, tag, &out)
	return out, err
}
