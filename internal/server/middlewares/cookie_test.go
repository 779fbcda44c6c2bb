package middlewares_test

import (
	"testing"

	"github.com/mdouchement/donezo/internal/server/middlewares"
	"github.com/stretchr/testify/assert"
)

func TestParseCookieHeader(t *testing.T) {
	cookies := middlewares.ParseCookieHeader("session=abc123; theme=dark")
	assert.Equal(t, []middlewares.Cookie{
		{Name: "session", Value: "abc123"},
		{Name: "theme", Value: "dark"},
	}, cookies)
}

func TestParseCookieHeaderDuplicateNames(t *testing.T) {
	// Multiple cookies with the same name are all kept, in order.
	cookies := middlewares.ParseCookieHeader("session=stale; session=fresh")
	assert.Equal(t, []middlewares.Cookie{
		{Name: "session", Value: "stale"},
		{Name: "session", Value: "fresh"},
	}, cookies)
}

func TestParseCookieHeaderMalformed(t *testing.T) {
	assert.Empty(t, middlewares.ParseCookieHeader(""))
	assert.Empty(t, middlewares.ParseCookieHeader(";;;"))
	assert.Empty(t, middlewares.ParseCookieHeader("no-separator"))

	// A value containing `=` is split on the first occurrence only.
	cookies := middlewares.ParseCookieHeader("session=a=b")
	assert.Equal(t, []middlewares.Cookie{{Name: "session", Value: "a=b"}}, cookies)

	// Malformed fragments do not hide well-formed ones.
	cookies = middlewares.ParseCookieHeader("garbage; session=abc123")
	assert.Equal(t, []middlewares.Cookie{{Name: "session", Value: "abc123"}}, cookies)
}
