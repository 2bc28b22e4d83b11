package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// VisitorCookie keys durable preferences; it outlives browser sessions
	VisitorCookie = "visitor_id"
	// ViewSessionCookie keys the in-memory view state
	ViewSessionCookie = "view_session"

	visitorMaxAge = 365 * 24 * time.Hour

	// ColorSchemeHint is the client hint carrying the system color scheme
	ColorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

	contextVisitorID   = "visitorID"
	contextViewSession = "viewSessionID"
	contextSystemDark  = "systemDark"
)

// Sessions makes sure every request carries a visitor id and a view session
// id, issuing fresh cookies when they are missing or malformed. It also asks
// the browser for the color scheme client hint.
func Sessions() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := c.Response()
			res.Header().Add(echo.HeaderVary, ColorSchemeHint)
			res.Header().Set("Accept-CH", ColorSchemeHint)

			visitorID := cookieID(c, VisitorCookie)
			if visitorID == "" {
				visitorID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookie,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(visitorMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(contextVisitorID, visitorID)
			if sessionID := cookieID(c, ViewSessionCookie); sessionID != "" {
				c.Set(contextViewSession, sessionID)
			} else {
				RenewViewSession(c)
			}
			if dark, ok := parseColorScheme(c.Request().Header.Get(ColorSchemeHint)); ok {
				c.Set(contextSystemDark, dark)
			}

			return next(c)
		}
	}
}

// RenewViewSession issues a fresh view session cookie and returns its id
func RenewViewSession(c echo.Context) string {
	sessionID := uuid.NewString()
	// No MaxAge: the view session ends with the browser session
	c.SetCookie(&http.Cookie{
		Name:     ViewSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(contextViewSession, sessionID)
	return sessionID
}

func cookieID(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

// parseColorScheme reads a structured header string such as "dark"
func parseColorScheme(v string) (dark bool, ok bool) {
	switch strings.Trim(strings.TrimSpace(v), `"`) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}

// VisitorID returns the id set by Sessions
func VisitorID(c echo.Context) string {
	return getString(c, contextVisitorID)
}

// ViewSessionID returns the id set by Sessions
func ViewSessionID(c echo.Context) string {
	return getString(c, contextViewSession)
}

// SystemDark returns the system color scheme hint, nil when the browser sent none
func SystemDark(c echo.Context) *bool {
	if dark, ok := c.Get(contextSystemDark).(bool); ok {
		return &dark
	}
	return nil
}

func getString(c echo.Context, key string) string {
	if val, ok := c.Get(key).(string); ok {
		return val
	}
	return ""
}
