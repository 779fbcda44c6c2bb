package server_test

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/donezo/internal/database"
	"github.com/mdouchement/donezo/internal/password"
	"github.com/mdouchement/donezo/internal/server"
)

const secret = "password42"

// passwordHash is derived once, argon2 is deliberately slow.
var passwordHash = func() string {
	hash, err := password.Hash(secret)
	if err != nil {
		panic(err)
	}
	return hash
}()

func setup() (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	return setupWithBasePath("")
}

func setupWithBasePath(basePath string) (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "donezo.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	ctrl = server.Controller{
		Database:     db,
		PasswordHash: passwordHash,
		BasePath:     basePath,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New(), func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

// login opens a session and returns the cookie value.
func login(engine *echo.Echo, r *gofight.RequestConfig) (session string) {
	r.POST("/api/login").SetJSON(gofight.D{"password": secret}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		if r.Code != http.StatusOK {
			panic("login failed: " + r.Body.String())
		}
		session = sessionCookie(r.HeaderMap.Get("Set-Cookie"))
	})
	return session
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

// sessionCookie extracts the session value from a Set-Cookie header.
func sessionCookie(header string) string {
	pair, _, _ := strings.Cut(header, ";")
	name, value, _ := strings.Cut(pair, "=")
	if name != "session" {
		panic("unexpected Set-Cookie header: " + header)
	}
	return value
}
