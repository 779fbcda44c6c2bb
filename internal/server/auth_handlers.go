package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/donezo/internal/database"
	"github.com/mdouchement/donezo/internal/derror"
	"github.com/mdouchement/donezo/internal/password"
	"github.com/mdouchement/donezo/internal/server/middlewares"
	"github.com/mdouchement/donezo/internal/server/session"
	"github.com/sirupsen/logrus"
)

// auth contains all authentication and token management handlers.
type auth struct {
	db           database.Client
	sessions     session.Manager
	passwordHash string
}

type loginParams struct {
	Password string `json:"password"`
}

type createTokenParams struct {
	Name string `json:"name"`
}

///// Login
////
//

// Login verifies the shared secret and opens a new session.
func (h *auth) Login(c echo.Context) error {
	var params loginParams
	if err := c.Bind(&params); err != nil {
		return derror.BadRequest("Could not get credentials.")
	}

	if !password.Verify(params.Password, h.passwordHash) {
		return derror.Unauthorized()
	}

	s, err := h.sessions.Create()
	if err != nil {
		return derror.Storage(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(session.Lifetime.Seconds()),
	})

	logrus.Info("user logged in")
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

///// Logout
////
//

// Logout terminates the session carried by the cookie, if any, and clears it.
func (h *auth) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middlewares.SessionCookieName); err == nil {
		if err := h.sessions.Revoke(cookie.Value); err != nil {
			return derror.Storage(err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	logrus.Info("user logged out")
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

///// ListTokens
////
//

// ListTokens renders all the API tokens, most recent first.
func (h *auth) ListTokens(c echo.Context) error {
	tokens, err := h.db.ListTokens()
	if err != nil {
		return derror.Storage(err)
	}
	return c.JSON(http.StatusOK, tokens)
}

///// CreateToken
////
//

// CreateToken mints a new API token. Only reachable with a session so a
// leaked token cannot create further ones.
func (h *auth) CreateToken(c echo.Context) error {
	var params createTokenParams
	if err := c.Bind(&params); err != nil {
		return derror.BadRequest("Could not get token params.")
	}

	token, err := h.db.CreateToken(session.SecureToken(session.TokenLength), params.Name)
	if err != nil {
		return derror.Storage(err)
	}

	logrus.WithField("name", token.Name).Info("created API token")
	return c.JSON(http.StatusOK, token)
}

///// RevokeToken
////
//

// RevokeToken deletes an API token by id.
func (h *auth) RevokeToken(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return derror.BadRequest("Invalid token id.")
	}

	deleted, err := h.db.DeleteToken(id)
	if err != nil {
		return derror.Storage(err)
	}
	if !deleted {
		return derror.NotFound()
	}

	logrus.WithField("id", id).Info("revoked API token")
	return c.NoContent(http.StatusNoContent)
}
