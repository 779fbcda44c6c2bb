// Package derror defines the errors rendered by the donezo server.
package derror

import "net/http"

// An Error is rendered as a `{"error": message}` JSON body with its HTTP code.
type Error struct {
	HTTPCode int    `json:"-"`
	Message  string `json:"error"`
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if derr, ok := err.(*Error); ok {
		return derr.HTTPCode
	}
	return http.StatusInternalServerError
}

// Unauthorized returns the error used for any missing, invalid or expired
// credential. The message never tells which case occurred.
func Unauthorized() *Error {
	return &Error{HTTPCode: http.StatusUnauthorized, Message: "Unauthorized"}
}

// NotFound returns the error used when an operation targets a missing id.
func NotFound() *Error {
	return &Error{HTTPCode: http.StatusNotFound, Message: "Not found"}
}

// BadRequest returns the error used for a caller-supplied validation failure.
func BadRequest(message string) *Error {
	return &Error{HTTPCode: http.StatusBadRequest, Message: message}
}

// Storage returns the error used when the underlying store fails.
// The message is passed through verbatim, there is a single operator audience.
func Storage(err error) *Error {
	return &Error{HTTPCode: http.StatusInternalServerError, Message: err.Error()}
}
