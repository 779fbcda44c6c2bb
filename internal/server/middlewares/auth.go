package middlewares

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/donezo/internal/database"
	"github.com/mdouchement/donezo/internal/derror"
	"github.com/mdouchement/donezo/internal/model"
	"github.com/mdouchement/donezo/internal/server/session"
	"github.com/sirupsen/logrus"
)

const (
	// SessionCookieName is the cookie carrying the session id.
	SessionCookieName = "session"
	// CurrentSessionContextKey is the key to retrieve the current_session from echo.Context.
	CurrentSessionContextKey = "current_session"
	// AuthenticatedContextKey is the key to retrieve the MaybeAuth outcome from echo.Context.
	AuthenticatedContextKey = "authenticated"

	bearerPrefix = "Bearer "
)

// Auth returns a middleware granting access to requests carrying either a
// valid session cookie or a known bearer token, in that order. The rejection
// does not tell a missing credential from an invalid one.
func Auth(sessions session.Manager, db database.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s := currentSession(c, sessions); s != nil {
				c.Set(CurrentSessionContextKey, s)
				return next(c)
			}

			granted, err := bearerGranted(c, db)
			if err != nil {
				return err
			}
			if granted {
				return next(c)
			}

			logrus.Warn("unauthorized API access attempt")
			return derror.Unauthorized()
		}
	}
}

// SessionAuth returns a middleware granting access to session cookies only.
// It guards the token management endpoints so a leaked bearer token cannot
// mint further bearer tokens.
func SessionAuth(sessions session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s := currentSession(c, sessions); s != nil {
				c.Set(CurrentSessionContextKey, s)
				return next(c)
			}
			return derror.Unauthorized()
		}
	}
}

// MaybeAuth returns a middleware that never rejects. It only records whether
// a valid session is present, for the page handlers to pick a redirect.
func MaybeAuth(sessions session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AuthenticatedContextKey, currentSession(c, sessions) != nil)
			return next(c)
		}
	}
}

// currentSession tries every cookie named `session` in order until one
// validates. Lookup failures on this path are logged and treated as a missing
// credential, the bearer fallback of Auth still runs.
func currentSession(c echo.Context, sessions session.Manager) *model.Session {
	for _, header := range c.Request().Header.Values("Cookie") {
		for _, cookie := range ParseCookieHeader(header) {
			if cookie.Name != SessionCookieName {
				continue
			}

			s, err := sessions.Validate(cookie.Value)
			if err != nil {
				logrus.WithError(err).Error("could not validate session")
				continue
			}
			if s != nil {
				return s
			}
		}
	}
	return nil
}

// bearerGranted checks the Authorization header for a known API token.
// A missing or malformed header means no credential. A store failure is a
// hard error, not an unauthorized rejection.
func bearerGranted(c echo.Context, db database.Client) (bool, error) {
	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	value, ok := strings.CutPrefix(authorization, bearerPrefix)
	if !ok || value == "" {
		return false, nil
	}

	if _, err := db.FindTokenByValue(value); err != nil {
		if db.IsNotFound(err) {
			return false, nil
		}
		return false, derror.Storage(err)
	}
	return true, nil
}
