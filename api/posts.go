package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListPosts returns one page of posts.
func (c *Client) ListPosts(ctx context.Context, p ListParams) (Paginated[Post], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(max(p.Limit, 1)))
	if p.Sort != "" {
		q.Set("sort", p.Sort)
		order := p.Order
		if order == "" {
			order = "asc"
		}
		q.Set("order", order)
	}
	var out Paginated[Post]
	_, err := c.do(ctx, "list posts", http.MethodGet, "/posts", q, nil, &out)
	return out, err
}

// GetPost returns the post with the given id.
func (c *Client) GetPost(ctx context.Context, id int) (Post, error) {
	var out Post
	_, err := c.do(ctx, "get post", http.MethodGet, "/posts/"+strconv.Itoa(id), nil, nil, &out)
	return out, err
}

// CreatePost creates a post and attaches the response status to the result.
func (c *Client) CreatePost(ctx context.Context, req PostRequest) (Post, error) {
	if req.CategoriesIDs == nil {
		req.CategoriesIDs = []int{}
	}
	var out Post
	code, err := c.do(ctx, "create post", http.MethodPost, "/posts", nil, req, &out)
	if err != nil {
		return Post{}, err
	}
	out.HTTPStatus = code
	return out, nil
}

// UpdatePost replaces the writable fields of a post.
func (c *Client) UpdatePost(ctx context.Context, id int, post NewPost) (NewPost, error) {
	var out NewPost
	_, err := c.do(ctx, "update post", http.MethodPut, "/posts/"+strconv.Itoa(id), nil, post, &out)
	return out, err
}

// DeletePosts deletes posts by id and returns the ids the backend deleted.
func (c *Client) DeletePosts(ctx context.Context, ids []int) ([]int, error) {
	var out IDs
	if _, err := c.do(ctx, "delete posts", http.MethodDelete, "/posts", nil, IDs{IDs: ids}, &out); err != nil {
		return nil, err
	}
	return out.IDs, nil
}
