package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"

	"github.com/franceviagens/portal/internal/audit"
	"github.com/franceviagens/portal/internal/config"
	"github.com/franceviagens/portal/internal/flowstore"
	"github.com/franceviagens/portal/internal/handlers"
	"github.com/franceviagens/portal/internal/middleware"
	"github.com/franceviagens/portal/internal/pubsub"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E           *echo.Echo
	Cfg         config.Provider
	version     string
	flows       *flowstore.Store
	bridge      *pubsub.WatermillBridge
	auditLog    *audit.Logger
	authHandler *handlers.AuthHandler
}

// New creates a Server from the services in i and registers its routes.
func New(i do.Injector, version string) (*Server, error) {
	cfg, err := do.Invoke[config.Provider](i)
	if err != nil {
		return nil, err
	}
	flows, err := do.Invoke[*flowstore.Store](i)
	if err != nil {
		return nil, fmt.Errorf("flow store: %w", err)
	}
	bridge, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, fmt.Errorf("event bridge: %w", err)
	}
	auditLog, err := do.Invoke[*audit.Logger](i)
	if err != nil {
		return nil, err
	}
	authHandler, err := do.Invoke[*handlers.AuthHandler](i)
	if err != nil {
		return nil, fmt.Errorf("auth handler: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	setupErrorHandling(e)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			middleware.FromContext(c.Request().Context()).Info("Request handled",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(middleware.Visitor)

	s := &Server{
		E:           e,
		Cfg:         cfg,
		version:     version,
		flows:       flows,
		bridge:      bridge,
		auditLog:    auditLog,
		authHandler: authHandler,
	}
	s.RegisterRoutes()

	slog.Debug("Server initialized", "auth_base_url", cfg.GetAuthBaseURL(), "language", cfg.GetLanguage())
	return s, nil
}
