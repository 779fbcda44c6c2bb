// Package assets holds the embedded frontend served by the web handlers.
package assets

import (
	_ "embed"
)

// IndexHTML is the task list page.
//
//go:embed index.html
var IndexHTML string

// LoginHTML is the login page.
//
//go:embed login.html
var LoginHTML string

// AppJS is the client-side application.
//
//go:embed app.js
var AppJS string

// OutputCSS is the compiled stylesheet.
//
//go:embed output.css
var OutputCSS string
