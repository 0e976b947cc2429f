package middleware

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// VisitorSessionName is the cookie session holding the visitor id.
	VisitorSessionName = "visitor-session"
	visitorKey         = "visitor_id"
)

// Visitor assigns every browser a random id kept in a cookie session, so its
// flows survive between requests. It must run after session.Middleware.
func Visitor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(VisitorSessionName, c)
		if sess == nil {
			return err
		}
		if err != nil {
			// A cookie signed with an old secret; start over with a fresh session.
			FromContext(c.Request().Context()).Debug("Discarding unreadable visitor session", "error", err)
		}

		id, _ := sess.Values[visitorKey].(string)
		if _, perr := uuid.Parse(id); perr != nil {
			id = uuid.NewString()
			sess.Values[visitorKey] = id
			sess.Options.HttpOnly = true
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				slog.Error("Failed to save visitor session", "error", err)
			}
		}

		c.Set(visitorKey, id)
		return next(c)
	}
}

// VisitorID returns the id assigned by Visitor, or "" outside that middleware.
func VisitorID(c echo.Context) string {
	id, _ := c.Get(visitorKey).(string)
	return id
}
