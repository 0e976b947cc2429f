package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/i18n"
	"github.com/franceviagens/portal/internal/view"
	"github.com/franceviagens/portal/internal/view/dto/auth"
)

var pt = i18n.Printer(language.BrazilianPortuguese)

func TestLoginPage(t *testing.T) {
	var buf bytes.Buffer
	err := view.LoginPage(pt, "pt-BR", auth.LoginData{
		Email:  "ana@example.com",
		Result: domain.Failed("bad credentials"),
	}).Render(context.Background(), &buf)
	require.NoError(t, err)
	html := buf.String()

	assert.Contains(t, strings.ToLower(html), "<!doctype html>")
	assert.Contains(t, html, `lang="pt-BR"`)
	assert.Contains(t, html, `hx-post="/auth/login"`)
	assert.Contains(t, html, `action="/auth/login"`)
	assert.Contains(t, html, `value="ana@example.com"`)
	assert.Contains(t, html, "*bad credentials")
	assert.Contains(t, html, "ENTRAR")
	assert.Contains(t, html, `href="/auth/register"`)
	assert.NotContains(t, html, "text-success")
}

func TestLoginFormIdleHasNoMessages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.LoginForm(pt, auth.LoginData{Result: domain.Idle()}).Render(&buf))
	html := buf.String()

	assert.NotContains(t, html, "text-error")
	assert.NotContains(t, html, `type="submit" disabled`)
	assert.Contains(t, html, "htmx-indicator")
}

func TestRegisterFormShowsOneMessage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.RegisterForm(pt, auth.RegisterData{
		Username: "ana",
		Result:   domain.Succeeded("welcome"),
	}).Render(&buf))
	html := buf.String()

	assert.Contains(t, html, "*welcome")
	assert.Contains(t, html, "text-success")
	assert.NotContains(t, html, "text-error")
	assert.Contains(t, html, `name="confirm_password"`)
	assert.Contains(t, html, `value="ana"`)

	buf.Reset()
	require.NoError(t, view.RegisterForm(pt, auth.RegisterData{Result: domain.Failed("email taken")}).Render(&buf))
	html = buf.String()
	assert.Contains(t, html, "*email taken")
	assert.NotContains(t, html, "text-success")
}

func TestSubmittingDisablesButton(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.RegisterForm(pt, auth.RegisterData{Result: domain.Submitting()}).Render(&buf))
	html := buf.String()

	assert.Contains(t, html, `type="submit" disabled`)
	assert.Contains(t, html, "Enviando...")
	assert.NotContains(t, html, "htmx-indicator\"")
}

func TestPasswordsAreNeverRendered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.RegisterForm(pt, auth.RegisterData{}).Render(&buf))
	assert.NotContains(t, buf.String(), `type="password" value=`)
}
