package view

import (
	"github.com/a-h/templ"
	"golang.org/x/text/message"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/i18n"
	"github.com/franceviagens/portal/internal/view/dto/auth"
)

const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"

	loginFormID    = "login-form"
	registerFormID = "register-form"
)

// LoginPage renders the full login document.
func LoginPage(p *message.Printer, lang string, data auth.LoginData) templ.Component {
	return Page(p.Sprintf(i18n.LoginTitle), lang, LoginForm(p, data))
}

// RegisterPage renders the full registration document.
func RegisterPage(p *message.Printer, lang string, data auth.RegisterData) templ.Component {
	return Page(p.Sprintf(i18n.RegisterTitle), lang, RegisterForm(p, data))
}

// LoginForm is the swappable login card. It never displays a success message.
func LoginForm(p *message.Printer, data auth.LoginData) g.Node {
	return card(loginFormID, LoginPath,
		h.H1(g.Text(p.Sprintf(i18n.LoginTitle))),
		field(p.Sprintf(i18n.LabelEmail), "email", "email", data.Email, "email"),
		field(p.Sprintf(i18n.LabelPassword), "password", "password", "", "current-password"),
		errorText(data.Result),
		submit(p, i18n.LoginSubmit, data.Result),
		h.A(h.Href(RegisterPath), h.Class("text-center underline"), g.Text(p.Sprintf(i18n.LoginToRegister))),
	)
}

// RegisterForm is the swappable registration card.
func RegisterForm(p *message.Printer, data auth.RegisterData) g.Node {
	return card(registerFormID, RegisterPath,
		h.H1(g.Text(p.Sprintf(i18n.RegisterTitle))),
		field(p.Sprintf(i18n.LabelUsername), "username", "text", data.Username, "username"),
		field(p.Sprintf(i18n.LabelEmail), "email", "email", data.Email, "email"),
		field(p.Sprintf(i18n.LabelPassword), "password", "password", "", "new-password"),
		field(p.Sprintf(i18n.LabelConfirm), "confirm_password", "password", "", "new-password"),
		errorText(data.Result),
		successText(data.Result),
		submit(p, i18n.RegisterSubmit, data.Result),
		h.A(h.Href(LoginPath), h.Class("text-center underline"), g.Text(p.Sprintf(i18n.RegisterToLogin))),
	)
}

// card is a form that posts normally without JavaScript and swaps itself in
// place with htmx, disabling its button while the request is pending.
func card(id, action string, children ...g.Node) g.Node {
	return h.Form(
		h.ID(id),
		h.Class("auth-card"),
		h.Method("post"),
		h.Action(action),
		hx.Post(action),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "find button"),
		g.Group(children),
	)
}

func field(label, name, kind, value, autocomplete string) g.Node {
	return h.Label(
		g.Text(label),
		h.Input(
			h.Name(name),
			h.Type(kind),
			g.If(value != "", h.Value(value)),
			g.Attr("autocomplete", autocomplete),
		),
	)
}

func errorText(r domain.Result) g.Node {
	return g.If(r.HasError(), h.Span(h.Class("text-error"), h.Role("alert"), g.Text("*"+r.Error)))
}

func successText(r domain.Result) g.Node {
	return g.If(r.HasSuccess(), h.Span(h.Class("text-success"), h.Role("status"), g.Text("*"+r.Success)))
}

func submit(p *message.Printer, key string, r domain.Result) g.Node {
	pending := r.State == domain.StateSubmitting
	return h.Button(
		h.Type("submit"),
		g.If(pending, h.Disabled()),
		g.Text(p.Sprintf(key)),
		h.Span(
			g.If(!pending, h.Class("htmx-indicator")),
			g.Text(" "+p.Sprintf(i18n.Submitting)),
		),
	)
}
