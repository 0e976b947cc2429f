package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/flowstore"
	"github.com/franceviagens/portal/internal/i18n"
	"github.com/franceviagens/portal/internal/middleware"
	"github.com/franceviagens/portal/internal/rendering"
	"github.com/franceviagens/portal/internal/view"
	"github.com/franceviagens/portal/internal/view/dto/auth"
)

// AuthHandler serves the login and registration pages. Each visitor gets its
// own pair of flows from the store.
type AuthHandler struct {
	flows    *flowstore.Store
	renderer rendering.Renderer
	lang     language.Tag
}

// NewAuthHandler creates a new AuthHandler. lang is used when the browser
// asks for no supported language.
func NewAuthHandler(flows *flowstore.Store, renderer rendering.Renderer, lang language.Tag) *AuthHandler {
	return &AuthHandler{
		flows:    flows,
		renderer: renderer,
		lang:     lang,
	}
}

func (h *AuthHandler) language(c echo.Context) language.Tag {
	return i18n.Match(c.Request().Header.Get("Accept-Language"), h.lang)
}

// LoginGet renders an empty login page (GET /auth/login). Every page view
// starts new flows, abandoning anything this visitor left in flight.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	h.flows.Reset(middleware.VisitorID(c))
	return h.renderLogin(c, h.language(c), auth.LoginData{Result: domain.Idle()})
}

// LoginPost submits the login form (POST /auth/login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var creds domain.LoginCredentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}

	lang := h.language(c)
	f := h.flows.Login(middleware.VisitorID(c), lang)
	f.SetEmail(creds.Email)
	f.SetPassword(creds.Password)

	// The submission outlives a dropped connection; only navigation abandons it.
	ctx := c.Request().Context()
	r, err := f.Submit(context.WithoutCancel(ctx))
	if errors.Is(err, domain.ErrSubmissionInProgress) {
		middleware.FromContext(ctx).Debug("Login already pending, waiting for its outcome")
		if r, err = f.Await(ctx); err != nil {
			return requestGone(c, err)
		}
	}

	return h.renderLogin(c, lang, auth.LoginData{Email: f.Email(), Result: r})
}

// RegisterGet renders an empty registration page (GET /auth/register).
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	h.flows.Reset(middleware.VisitorID(c))
	return h.renderRegister(c, h.language(c), auth.RegisterData{Result: domain.Idle()})
}

// RegisterPost submits the registration form (POST /auth/register).
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	var details domain.RegistrationDetails
	if err := c.Bind(&details); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}

	lang := h.language(c)
	f := h.flows.Register(middleware.VisitorID(c), lang)
	f.SetUsername(details.Username)
	f.SetEmail(details.Email)
	f.SetPassword(details.Password)
	f.SetConfirmPassword(details.ConfirmPassword)

	ctx := c.Request().Context()
	r, err := f.Submit(context.WithoutCancel(ctx))
	if errors.Is(err, domain.ErrSubmissionInProgress) {
		middleware.FromContext(ctx).Debug("Registration already pending, waiting for its outcome")
		if r, err = f.Await(ctx); err != nil {
			return requestGone(c, err)
		}
	}

	return h.renderRegister(c, lang, auth.RegisterData{Username: f.Username(), Email: f.Email(), Result: r})
}

// renderLogin writes the login card for htmx requests and the whole page
// otherwise.
func (h *AuthHandler) renderLogin(c echo.Context, lang language.Tag, data auth.LoginData) error {
	p := i18n.Printer(lang)
	status := rendering.StatusFor(c, data.Result.HasError())
	if rendering.IsHTMX(c) {
		return h.renderer.RenderPage(c, status, view.LoginForm(p, data))
	}
	return h.renderer.RenderPage(c, status, view.LoginPage(p, lang.String(), data))
}

func (h *AuthHandler) renderRegister(c echo.Context, lang language.Tag, data auth.RegisterData) error {
	p := i18n.Printer(lang)
	status := rendering.StatusFor(c, data.Result.HasError())
	if rendering.IsHTMX(c) {
		return h.renderer.RenderPage(c, status, view.RegisterForm(p, data))
	}
	return h.renderer.RenderPage(c, status, view.RegisterPage(p, lang.String(), data))
}

// requestGone ends a request whose client stopped waiting. Nobody reads the
// response, so there is nothing to render or report.
func requestGone(c echo.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		middleware.FromContext(c.Request().Context()).Debug("Client left while a submission was pending", "error", err)
		return nil
	}
	return err
}
