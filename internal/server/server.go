package server

import (
	"fmt"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/donezo/internal/database"
	"github.com/mdouchement/donezo/internal/server/middlewares"
	"github.com/mdouchement/donezo/internal/server/session"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Database database.Client
	// The argon2 hash of the shared login secret, computed at startup and
	// kept in memory only.
	PasswordHash string
	// URL prefix applied to every route and injected into the served HTML.
	// Either empty or `/prefix` without a trailing slash.
	BasePath string
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	////////////
	// Router //
	////////////

	sessions := session.NewManager(ctrl.Database)

	router := engine.Group(ctrl.BasePath)

	//
	// web handlers
	//
	web := &web{basePath: ctrl.BasePath}
	maybe := middlewares.MaybeAuth(sessions)
	router.GET("/", web.Index, maybe)
	if ctrl.BasePath != "" {
		router.GET("", web.Index, maybe)
	}
	router.GET("/login", web.LoginPage, maybe)
	router.GET("/static/:path", web.Static)

	//
	// auth handlers
	//
	auth := &auth{
		db:           ctrl.Database,
		sessions:     sessions,
		passwordHash: ctrl.PasswordHash,
	}
	api := router.Group("/api")
	api.POST("/login", auth.Login)
	api.POST("/logout", auth.Logout)

	// Token management is session-only: a bearer token cannot mint tokens.
	tokens := api.Group("/tokens", middlewares.SessionAuth(sessions))
	tokens.GET("", auth.ListTokens)
	tokens.POST("", auth.CreateToken)
	tokens.DELETE("/:id", auth.RevokeToken)

	//
	// todo handlers
	//
	todo := &todo{db: ctrl.Database}
	todos := api.Group("/todos", middlewares.Auth(sessions, ctrl.Database))
	todos.GET("", todo.List)
	todos.POST("", todo.Create)
	todos.PUT("/reorder", todo.Reorder)
	todos.GET("/plain", todo.Plain)
	todos.GET("/:id", todo.Get)
	todos.PUT("/:id", todo.Update)
	todos.DELETE("/:id", todo.Delete)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
