package view

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const (
	htmxSrc    = "https://unpkg.com/htmx.org@2.0.4"
	stylesheet = "/static/css/portal.css"
)

// Page wraps body in the site's HTML document.
func Page(title, lang string, body g.Node) templ.Component {
	return AdaptGomponentToTempl(c.HTML5(c.HTML5Props{
		Title:    title + " - France Viagens",
		Language: lang,
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Script(h.Src(htmxSrc), h.Defer()),
			h.Link(h.Rel("stylesheet"), h.Href(stylesheet)),
		},
		Body: []g.Node{
			h.Main(h.Class("auth-page"), body),
		},
	}))
}
