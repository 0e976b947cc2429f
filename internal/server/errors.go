package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/franceviagens/portal/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unexpected errors
// with a stack trace and hides their details from the browser.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				middleware.FromContext(c.Request().Context()).Error("HTTP error", "status", he.Code, "error", err)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
			"error", err,
			"path", c.Request().URL.Path,
			slog.String("stack_trace", string(debug.Stack())),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError), c)
	}
}
