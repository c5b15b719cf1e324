package pubadmin

import (
	"cmp"
	"context"
	"strconv"
	"strings"

	"github.com/eringen/pubadmin/api"
	"github.com/eringen/pubadmin/datatable"
)

// resource describes one admin table: its columns, where its pages come
// from and which bulk actions it offers.
type resource[R datatable.Record] struct {
	name        string // URL segment and preference key
	singular    string
	title       string
	columns     func() *datatable.ColumnRegistry[R]
	fetcher     func(reg *datatable.ColumnRegistry[R]) datatable.Fetcher[R]
	deleter     datatable.Deleter
	defaultSort datatable.SortSpec
	cache       *PageCache[R]
	creatable   bool
}

func (r *resource[R]) basePath() string {
	return "/admin/" + r.name
}

func (r *resource[R]) pagePath(page int) string {
	return datatable.PagePath(r.basePath()+"/", page)
}

const dateLayout = "2006-01-02 15:04"

func formatDate(d *api.DateTime) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.UTC().Format(dateLayout)
}

func compareDates(a, b *api.DateTime) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(b.Time)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func postColumns() *datatable.ColumnRegistry[api.Post] {
	return datatable.MustColumnRegistry(
		datatable.Column[api.Post]{
			Key:       "id",
			Title:     "ID",
			Value:     func(p api.Post) string { return strconv.Itoa(p.ID) },
			Compare:   func(a, b api.Post) int { return cmp.Compare(a.ID, b.ID) },
			SortField: "id",
			Visible:   true,
		},
		datatable.Column[api.Post]{
			Key:       "title",
			Title:     "Title",
			Value:     func(p api.Post) string { return p.Title },
			Compare:   func(a, b api.Post) int { return compareFold(a.Title, b.Title) },
			SortField: "title",
			Visible:   true,
		},
		datatable.Column[api.Post]{
			Key:       "slug",
			Title:     "Slug",
			Value:     func(p api.Post) string { return p.Slug },
			Compare:   func(a, b api.Post) int { return strings.Compare(a.Slug, b.Slug) },
			SortField: "slug",
		},
		datatable.Column[api.Post]{
			Key:       "status",
			Title:     "Status",
			Value:     func(p api.Post) string { return string(p.Status) },
			Compare:   func(a, b api.Post) int { return strings.Compare(string(a.Status), string(b.Status)) },
			SortField: "status",
			Visible:   true,
		},
		datatable.Column[api.Post]{
			Key:     "categories",
			Title:   "Categories",
			Value:   func(p api.Post) string { return strings.Join(p.CategoryNames(), ", ") },
			Visible: true,
		},
		datatable.Column[api.Post]{
			Key:       "author",
			Title:     "Author",
			Value:     func(p api.Post) string { return strconv.Itoa(p.AuthorID) },
			Compare:   func(a, b api.Post) int { return cmp.Compare(a.AuthorID, b.AuthorID) },
			SortField: "author_id",
		},
		datatable.Column[api.Post]{
			Key:       "published",
			Title:     "Published",
			Value:     func(p api.Post) string { return formatDate(p.DatePublished) },
			Compare:   func(a, b api.Post) int { return compareDates(a.DatePublished, b.DatePublished) },
			SortField: "date_published",
			Visible:   true,
		},
		datatable.Column[api.Post]{
			Key:       "created",
			Title:     "Created",
			Value:     func(p api.Post) string { return formatDate(&p.DateCreated) },
			Compare:   func(a, b api.Post) int { return a.DateCreated.Compare(b.DateCreated.Time) },
			SortField: "date_created",
		},
	)
}

func categoryColumns() *datatable.ColumnRegistry[api.Category] {
	return datatable.MustColumnRegistry(
		datatable.Column[api.Category]{
			Key:     "id",
			Title:   "ID",
			Value:   func(c api.Category) string { return strconv.Itoa(c.ID) },
			Compare: func(a, b api.Category) int { return cmp.Compare(a.ID, b.ID) },
			Visible: true,
		},
		datatable.Column[api.Category]{
			Key:     "name",
			Title:   "Name",
			Value:   func(c api.Category) string { return c.Name },
			Compare: func(a, b api.Category) int { return compareFold(a.Name, b.Name) },
			Visible: true,
		},
		datatable.Column[api.Category]{
			Key:     "slug",
			Title:   "Slug",
			Value:   func(c api.Category) string { return c.Slug },
			Compare: func(a, b api.Category) int { return strings.Compare(a.Slug, b.Slug) },
			Visible: true,
		},
		datatable.Column[api.Category]{
			Key:   "parent",
			Title: "Parent",
			Value: func(c api.Category) string {
				if c.ParentID == nil {
					return "-"
				}
				return strconv.Itoa(*c.ParentID)
			},
		},
		datatable.Column[api.Category]{
			Key:   "description",
			Title: "Description",
			Value: func(c api.Category) string {
				if c.Description == nil {
					return ""
				}
				return *c.Description
			},
			Visible: true,
		},
		datatable.Column[api.Category]{
			Key:     "created",
			Title:   "Created",
			Value:   func(c api.Category) string { return formatDate(&c.DateCreated) },
			Compare: func(a, b api.Category) int { return a.DateCreated.Compare(b.DateCreated.Time) },
		},
	)
}

func tagColumns() *datatable.ColumnRegistry[api.Tag] {
	return datatable.MustColumnRegistry(
		datatable.Column[api.Tag]{
			Key:     "id",
			Title:   "ID",
			Value:   func(t api.Tag) string { return strconv.Itoa(t.ID) },
			Compare: func(a, b api.Tag) int { return cmp.Compare(a.ID, b.ID) },
			Visible: true,
		},
		datatable.Column[api.Tag]{
			Key:     "name",
			Title:   "Name",
			Value:   func(t api.Tag) string { return t.Name },
			Compare: func(a, b api.Tag) int { return compareFold(a.Name, b.Name) },
			Visible: true,
		},
		datatable.Column[api.Tag]{
			Key:     "slug",
			Title:   "Slug",
			Value:   func(t api.Tag) string { return t.Slug },
			Compare: func(a, b api.Tag) int { return strings.Compare(a.Slug, b.Slug) },
			Visible: true,
		},
		datatable.Column[api.Tag]{
			Key:     "description",
			Title:   "Description",
			Value:   func(t api.Tag) string { return t.Description },
			Visible: true,
		},
	)
}

// postFetcher pages posts on the backend, translating the sort column into
// the backend field name.
func postFetcher(client *api.Client) func(*datatable.ColumnRegistry[api.Post]) datatable.Fetcher[api.Post] {
	return func(reg *datatable.ColumnRegistry[api.Post]) datatable.Fetcher[api.Post] {
		fields := make(map[datatable.ColumnKey]string)
		for _, c := range reg.All() {
			if c.SortField != "" {
				fields[c.Key] = c.SortField
			}
		}
		return func(ctx context.Context, key datatable.FetchKey) (datatable.Page[api.Post], error) {
			params := api.ListParams{Page: key.Page, Limit: key.PerPage}
			if field, ok := fields[key.Sort.Column]; ok {
				params.Sort = field
				params.Order = key.Sort.Direction.String()
			}
			res, err := client.ListPosts(ctx, params)
			if err != nil {
				return datatable.Page[api.Post]{}, err
			}
			return datatable.Page[api.Post]{Records: res.Data, TotalItems: res.TotalItems}, nil
		}
	}
}

func categoryFetcher(client *api.Client) func(*datatable.ColumnRegistry[api.Category]) datatable.Fetcher[api.Category] {
	return func(reg *datatable.ColumnRegistry[api.Category]) datatable.Fetcher[api.Category] {
		return datatable.SliceFetcher(client.ListCategories, reg)
	}
}

func tagFetcher(client *api.Client) func(*datatable.ColumnRegistry[api.Tag]) datatable.Fetcher[api.Tag] {
	return func(reg *datatable.ColumnRegistry[api.Tag]) datatable.Fetcher[api.Tag] {
		return datatable.SliceFetcher(client.ListTags, reg)
	}
}
