package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/franceviagens/portal/internal/handlers"
	"github.com/franceviagens/portal/internal/middleware"
	"github.com/franceviagens/portal/internal/view"
	"github.com/franceviagens/portal/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.Cfg.GetRateLimit())

	s.E.StaticFS("/static", web.Static())

	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, view.LoginPath)
	})

	s.E.GET(view.LoginPath, s.authHandler.LoginGet)
	s.E.POST(view.LoginPath, s.authHandler.LoginPost, rateLimiter)

	s.E.GET(view.RegisterPath, s.authHandler.RegisterGet)
	s.E.POST(view.RegisterPath, s.authHandler.RegisterPost, rateLimiter)

	s.E.GET("/health", handlers.Health(s.version))
}
