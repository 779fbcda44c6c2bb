package middlewares

import "strings"

// A Cookie is a name/value pair extracted from a raw Cookie header.
type Cookie struct {
	Name  string
	Value string
}

// ParseCookieHeader parses a raw Cookie header into its name/value pairs.
// Fragments without a `=` separator are skipped. It is a pure function so the
// credential extraction stays testable without an HTTP stack.
func ParseCookieHeader(header string) []Cookie {
	var cookies []Cookie

	for _, fragment := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(fragment), "=")
		if !ok || name == "" {
			continue
		}
		cookies = append(cookies, Cookie{Name: name, Value: value})
	}

	return cookies
}
