package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func newContext(htmx bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRenderPage(t *testing.T) {
	r := NewUniversalRenderer()

	t.Run("gomponents node", func(t *testing.T) {
		c, rec := newContext(false)
		require.NoError(t, r.RenderPage(c, http.StatusCreated, h.P(g.Text("hi"))))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "<p>hi</p>", rec.Body.String())
		assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	})

	t.Run("templ component", func(t *testing.T) {
		c, rec := newContext(false)
		comp := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<b>templ</b>")
			return err
		})
		require.NoError(t, r.RenderPage(c, http.StatusOK, comp))
		assert.Equal(t, "<b>templ</b>", rec.Body.String())
	})

	t.Run("unsupported type", func(t *testing.T) {
		c, _ := newContext(false)
		assert.Error(t, r.RenderPage(c, http.StatusOK, 42))
	})
}

func TestStatusFor(t *testing.T) {
	plain, _ := newContext(false)
	htmx, _ := newContext(true)

	assert.Equal(t, http.StatusOK, StatusFor(plain, false))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(plain, true))
	assert.Equal(t, http.StatusOK, StatusFor(htmx, true))
	assert.True(t, IsHTMX(htmx))
	assert.False(t, IsHTMX(plain))
}
