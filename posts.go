package pubadmin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubadmin/api"
	"github.com/eringen/pubadmin/views"
)

// handleCreatePost forwards a new post to the backend. It accepts the
// backend's own JSON body ({"post": ..., "categories_ids": ...}) and the
// quick-create form. JSON callers get the created post back; form callers are
// redirected to the posts table with a notification carrying the backend
// status.
func (a *App) handleCreatePost(c echo.Context) error {
	req, err := bindPostRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Post.Title = strings.TrimSpace(req.Post.Title)
	if req.Post.Title == "" {
		return a.createFailed(c, http.StatusBadRequest, "Title is required.")
	}
	req.Post.Slug = strings.TrimSpace(req.Post.Slug)
	if req.Post.Slug == "" {
		req.Post.Slug = Slugify(req.Post.Title)
	}
	if req.Post.Slug == "" {
		return a.createFailed(c, http.StatusBadRequest, "Slug is required. Add a title or slug.")
	}
	if req.Post.Status == "" {
		req.Post.Status = api.StatusDraft
	}
	if !req.Post.Status.Valid() {
		return a.createFailed(c, http.StatusBadRequest, fmt.Sprintf("Unknown status %q.", req.Post.Status))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), a.Config.FetchTimeout)
	defer cancel()
	post, err := a.API.CreatePost(ctx, req)
	if err != nil {
		c.Logger().Errorf("create post: %v", err)
		code := api.StatusCode(err)
		if code == 0 {
			code = http.StatusBadGateway
		}
		return a.createFailed(c, code, "Create failed. "+api.Message(err))
	}
	if a.posts.cache != nil {
		a.posts.cache.Invalidate()
	}

	if isJSON(c) {
		return c.JSON(post.HTTPStatus, post)
	}
	text := fmt.Sprintf("Created %q (%d %s).", post.Title, post.HTTPStatus, http.StatusText(post.HTTPStatus))
	if err := addNotice(c, views.Notice{Kind: views.NoticeSuccess, Text: text}); err != nil {
		return err
	}
	return a.redirectToPosts(c)
}

func (a *App) createFailed(c echo.Context, code int, msg string) error {
	if isJSON(c) {
		return c.JSON(code, map[string]string{"error": msg})
	}
	if err := addNotice(c, views.Notice{Kind: views.NoticeError, Text: msg}); err != nil {
		return err
	}
	return a.redirectToPosts(c)
}

func (a *App) redirectToPosts(c echo.Context) error {
	path := a.posts.pagePath(1)
	if isHTMX(c) {
		c.Response().Header().Set(headerHXRedirect, path)
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

func isJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func bindPostRequest(c echo.Context) (api.PostRequest, error) {
	var req api.PostRequest
	if isJSON(c) {
		if err := c.Bind(&req); err != nil {
			return req, fmt.Errorf("invalid JSON body")
		}
		return req, nil
	}
	req.Post = api.NewPost{
		Title:   c.FormValue("title"),
		Slug:    c.FormValue("slug"),
		Content: c.FormValue("content"),
		Status:  api.PostStatus(strings.TrimSpace(c.FormValue("status"))),
	}
	if v := strings.TrimSpace(c.FormValue("author_id")); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid author_id %q", v)
		}
		req.Post.AuthorID = id
	}
	ids, err := ParseIDs(c.FormValue("categories_ids"))
	if err != nil {
		return req, err
	}
	req.CategoriesIDs = ids
	return req, nil
}
