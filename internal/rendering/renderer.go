package rendering

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer writes templ components and gomponents nodes as HTTP responses.
type Renderer interface {
	// RenderPage writes a full HTML response.
	RenderPage(c echo.Context, status int, component any) error
}

// UniversalRenderer renders both templ.Component and anything with
// Render(io.Writer) error, such as gomponents.Node.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

type gomponentNode interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// RenderPage implements Renderer.
func (r *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return r.render(c.Request().Context(), component, c.Response().Writer)
}

// Render implements echo.Renderer so c.Render(status, "", component) works.
func (r *UniversalRenderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}

// IsHTMX reports whether the request was issued by htmx and expects a fragment.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

var _ echo.Renderer = (*UniversalRenderer)(nil)

// StatusFor is the HTTP status used to render a form result. htmx only swaps
// 2xx responses, so fragments always get 200.
func StatusFor(c echo.Context, failed bool) int {
	if failed && !IsHTMX(c) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
