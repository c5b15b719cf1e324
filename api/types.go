package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the zone-less timestamp format used by the backend.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateTime is a timestamp without zone information, interpreted as UTC.
type DateTime struct {
	time.Time
}

// UnmarshalJSON accepts the backend layout (with optional fractional
// seconds), RFC 3339 and null.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, time.UTC)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid datetime %q", s)
		}
	}
	d.Time = t
	return nil
}

// MarshalJSON writes the backend layout.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(DateTimeLayout))
}

// PostStatus is the publication state of a post.
type PostStatus string

// Post states known to the backend.
const (
	StatusDraft     PostStatus = "Draft"
	StatusPending   PostStatus = "Pending"
	StatusPrivate   PostStatus = "Private"
	StatusScheduled PostStatus = "Scheduled"
	StatusPublished PostStatus = "Published"
)

// PostStatuses lists every post state in workflow order.
func PostStatuses() []PostStatus {
	return []PostStatus{StatusDraft, StatusPending, StatusPrivate, StatusScheduled, StatusPublished}
}

// Valid reports whether s is a known state.
func (s PostStatus) Valid() bool {
	for _, v := range PostStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// PostCategory is the category summary embedded in a post.
type PostCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Post is a post as returned by the backend.
type Post struct {
	// HTTPStatus is the status code of the response that produced the post.
	// It is set by CreatePost and never sent or decoded.
	HTTPStatus int `json:"-"`

	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Slug          string         `json:"slug"`
	AuthorID      int            `json:"author_id"`
	Status        PostStatus     `json:"status"`
	DatePublished *DateTime      `json:"date_published"`
	DateCreated   DateTime       `json:"date_created"`
	Categories    []PostCategory `json:"categories"`
}

// RecordID returns the post id.
func (p Post) RecordID() int { return p.ID }

// CategoryNames returns the names of the post categories.
func (p Post) CategoryNames() []string {
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = c.Name
	}
	return names
}

// NewPost is the writable part of a post.
type NewPost struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Slug          string     `json:"slug"`
	AuthorID      int        `json:"author_id"`
	Status        PostStatus `json:"status"`
	DatePublished *DateTime  `json:"date_published"`
}

// PostRequest is the body of a create request.
type PostRequest struct {
	Post          NewPost `json:"post"`
	CategoriesIDs []int   `json:"categories_ids"`
}

// Paginated is one page of a collection.
type Paginated[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
}

// IDs is the body of bulk requests and responses.
type IDs struct {
	IDs []int `json:"ids"`
}

// ListParams selects a page of posts.
type ListParams struct {
	Page  int
	Limit int
	Sort  string // backend field name; empty keeps the backend default
	Order string // "asc" or "desc"
}

// Category is a post category.
type Category struct {
	ID          int      `json:"id"`
	ParentID    *int     `json:"parent_id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description"`
	DateCreated DateTime `json:"date_created"`
}

// RecordID returns the category id.
func (c Category) RecordID() int { return c.ID }

// NewCategory is the writable part of a category.
type NewCategory struct {
	ParentID    *int   `json:"parent_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Tag is a post tag.
type Tag struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// RecordID returns the tag id.
func (t Tag) RecordID() int { return t.ID }

// NewTag is the writable part of a tag.
type NewTag struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
