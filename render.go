package pubadmin

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// htmx request and response headers.
const (
	headerHXRequest    = "HX-Request"
	headerHXReplaceURL = "HX-Replace-Url"
	headerHXRedirect   = "HX-Redirect"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// isHTMX reports whether the request was issued by htmx.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get(headerHXRequest) == "true"
}

// replaceURL tells the browser that the page it shows now lives at path.
// htmx requests get the path in a header and the browser history entry is
// replaced in place; full page loads are redirected, which the browser also
// records as a replacement of the requested URL. It reports whether the
// response was already written.
func replaceURL(c echo.Context, path string) (bool, error) {
	if isHTMX(c) {
		c.Response().Header().Set(headerHXReplaceURL, path)
		return false, nil
	}
	return true, c.Redirect(http.StatusFound, path)
}
