package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequestIndexRedirectsToLogin(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusSeeOther, r.Code)
		assert.Equal(t, "/login", r.HeaderMap.Get("Location"))
	})

	cookie := gofight.H{"session": login(engine, r)}
	r.GET("/").SetCookie(cookie).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Contains(t, r.Body.String(), `window.BASE_PATH = ""`)
		assert.Contains(t, r.Body.String(), `src="/static/app.js"`)
	})
}

func TestRequestLoginPageRedirectsHome(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/login").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Contains(t, r.Body.String(), "password")
	})

	cookie := gofight.H{"session": login(engine, r)}
	r.GET("/login").SetCookie(cookie).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusSeeOther, r.Code)
		assert.Equal(t, "/", r.HeaderMap.Get("Location"))
	})
}

func TestRequestStatic(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/static/app.js").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Contains(t, r.HeaderMap.Get("Content-Type"), "application/javascript")
	})

	r.GET("/static/output.css").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Contains(t, r.HeaderMap.Get("Content-Type"), "text/css")
	})

	r.GET("/static/secrets.txt").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

func TestRequestBasePath(t *testing.T) {
	engine, _, r, cleanup := setupWithBasePath("/todo")
	defer cleanup()

	r.GET("/todo").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusSeeOther, r.Code)
		assert.Equal(t, "/todo/login", r.HeaderMap.Get("Location"))
	})

	// Routes outside the prefix do not exist.
	r.GET("/api/todos").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	var cookie gofight.H
	r.POST("/todo/api/login").SetJSON(gofight.D{"password": secret}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		cookie = gofight.H{"session": sessionCookie(r.HeaderMap.Get("Set-Cookie"))}
	})

	r.GET("/todo/login").SetCookie(cookie).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusSeeOther, r.Code)
		assert.Equal(t, "/todo", r.HeaderMap.Get("Location"))
	})

	// The served HTML resolves its assets under the prefix.
	r.GET("/todo").SetCookie(cookie).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Contains(t, r.Body.String(), `window.BASE_PATH = "/todo"`)
		assert.Contains(t, r.Body.String(), `href="/todo/static/output.css"`)
		assert.Contains(t, r.Body.String(), `src="/todo/static/app.js"`)
	})

	r.GET("/todo/static/app.js").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})
}
