package browser

import (
	"strings"
	"unicode"
)

// Resolve turns raw URL-bar input into a navigable URL.
//
// Input that already carries an http(s) or internal scheme is returned as is.
// A single word containing a dot is treated as a bare domain. Anything else,
// including empty input, becomes a query for engine.
func Resolve(raw string, engine SearchEngine) string {
	input := strings.TrimSpace(raw)

	if IsNavigable(input) {
		return input
	}

	if strings.Contains(input, ".") && !strings.ContainsFunc(input, unicode.IsSpace) {
		return "https://" + input
	}

	return engine.SearchURL(input)
}

// IsNavigable reports whether s already starts with a scheme the shell or
// the content viewer understands.
func IsNavigable(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		IsInternal(s)
}

// IsInternal reports whether url uses the internal scheme.
func IsInternal(url string) bool {
	return strings.HasPrefix(url, InternalScheme)
}

// TitleFor derives a tab title from a resolved URL: the host part for web
// URLs, HomeTitle for internal ones.
func TitleFor(url string) string {
	if IsInternal(url) {
		return HomeTitle
	}

	rest := strings.TrimPrefix(url, "https://")
	rest = strings.TrimPrefix(rest, "http://")
	host, _, _ := strings.Cut(rest, "/")
	if host == "" {
		return NewTabTitle
	}
	return host
}

// DisplayURL is the URL-bar text for a tab. The home URL is never shown.
func DisplayURL(t Tab) string {
	if t.IsHome() {
		return ""
	}
	return t.URL()
}

// ProxiedURL returns the address the content viewer should load for url.
// An empty proxy disables proxying.
func ProxiedURL(proxy, url string) string {
	if proxy == "" {
		return url
	}
	return proxy + "?url=" + EncodeURIComponent(url)
}

// EncodeURIComponent percent-encodes s the way browsers' encodeURIComponent
// does: everything except ASCII letters, digits and -_.!~*'() is escaped as
// UTF-8 bytes, so a space becomes %20 rather than +.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
