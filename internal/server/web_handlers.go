package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/donezo/internal/server/assets"
	"github.com/mdouchement/donezo/internal/server/middlewares"
)

// web contains the page and static asset handlers.
type web struct {
	basePath string
}

// Index renders the task list page, or redirects to the login page when no
// valid session is present.
func (h *web) Index(c echo.Context) error {
	if !authenticated(c) {
		return c.Redirect(http.StatusSeeOther, h.basePath+"/login")
	}
	return c.HTML(http.StatusOK, injectBasePath(assets.IndexHTML, h.basePath))
}

// LoginPage renders the login page, or redirects home when already logged in.
func (h *web) LoginPage(c echo.Context) error {
	if authenticated(c) {
		index := h.basePath
		if index == "" {
			index = "/"
		}
		return c.Redirect(http.StatusSeeOther, index)
	}
	return c.HTML(http.StatusOK, injectBasePath(assets.LoginHTML, h.basePath))
}

// Static serves the two embedded assets by literal path match.
func (h *web) Static(c echo.Context) error {
	switch c.Param("path") {
	case "app.js":
		return c.Blob(http.StatusOK, "application/javascript", []byte(assets.AppJS))
	case "output.css":
		return c.Blob(http.StatusOK, "text/css", []byte(assets.OutputCSS))
	default:
		return c.NoContent(http.StatusNotFound)
	}
}

func authenticated(c echo.Context) bool {
	ok, _ := c.Get(middlewares.AuthenticatedContextKey).(bool)
	return ok
}

// injectBasePath makes the served HTML resolve its assets and API calls under
// the configured URL prefix.
func injectBasePath(html, basePath string) string {
	script := fmt.Sprintf(`<script>window.BASE_PATH = %q;</script>`, basePath)
	html = strings.Replace(html, "<head>", "<head>\n    "+script, 1)

	html = strings.ReplaceAll(html, `href="/static/`, fmt.Sprintf(`href="%s/static/`, basePath))
	return strings.ReplaceAll(html, `src="/static/`, fmt.Sprintf(`src="%s/static/`, basePath))
}
