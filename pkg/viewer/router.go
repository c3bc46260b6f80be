package viewer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"

	"github.com/entrhq/graphite/pkg/browser"
)

// Router decides the address a viewer actually loads for a tab URL.
//
// With a proxy configured, URLs are rewritten through it, except for hosts
// matching one of the bypass patterns. Patterns are globs over host names
// with '.' as separator, so "*.internal" matches "db.internal" but not
// "a.db.internal"; use "**.internal" for any depth.
type Router struct {
	bypass []glob.Glob
}

// NewRouter compiles the bypass patterns.
func NewRouter(bypass []string) (*Router, error) {
	r := &Router{}
	for _, pattern := range bypass {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid proxy bypass pattern '%s': %w", pattern, err)
		}
		r.bypass = append(r.bypass, g)
	}
	return r, nil
}

// Target returns the URL to load for target when proxy is the configured
// proxy prefix. A nil Router never bypasses.
func (r *Router) Target(proxy, target string) string {
	if proxy == "" || r.Bypassed(target) {
		return target
	}
	return browser.ProxiedURL(proxy, target)
}

// Bypassed reports whether target's host matches a bypass pattern.
func (r *Router) Bypassed(target string) bool {
	if r == nil || len(r.bypass) == 0 {
		return false
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, g := range r.bypass {
		if g.Match(host) {
			return true
		}
	}
	return false
}
