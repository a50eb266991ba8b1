// Package blog fetches short text snippets for visit entries that link to a
// blog post.
package blog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotAllowed is returned for blog URLs outside the allow-list.
var ErrNotAllowed = errors.New("origin not allowed")

// Allowlist holds the origins snippets may be fetched from: the site's own
// origin and one external blog host.
type Allowlist struct {
	site    *url.URL
	origins map[string]bool
}

// NewAllowlist builds an allow-list from the site URL and a blog host. The
// blog host may be a bare host name or a URL. Either may be empty.
func NewAllowlist(siteURL, blogHost string) (*Allowlist, error) {
	a := &Allowlist{origins: make(map[string]bool)}

	if siteURL != "" {
		u, err := parseOrigin(siteURL)
		if err != nil {
			return nil, fmt.Errorf("parsing site URL: %w", err)
		}
		a.site = u
		a.origins[origin(u)] = true
	}

	if blogHost != "" {
		if !strings.Contains(blogHost, "://") {
			blogHost = "https://" + blogHost
		}
		u, err := parseOrigin(blogHost)
		if err != nil {
			return nil, fmt.Errorf("parsing blog host: %w", err)
		}
		a.origins[origin(u)] = true
	}
	return a, nil
}

// Resolve returns the absolute form of raw if its origin is allowed.
// Relative URLs resolve against the site URL.
func (a *Allowlist) Resolve(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", raw, err)
	}
	if !u.IsAbs() {
		if a.site == nil {
			return nil, fmt.Errorf("relative URL %q: %w", raw, ErrNotAllowed)
		}
		u = a.site.ResolveReference(u)
	}
	if !a.origins[origin(u)] {
		return nil, fmt.Errorf("%s: %w", origin(u), ErrNotAllowed)
	}
	return u, nil
}

// Allowed reports whether raw may be fetched.
func (a *Allowlist) Allowed(raw string) bool {
	_, err := a.Resolve(raw)
	return err == nil
}

func parseOrigin(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}
	return u, nil
}

func origin(u *url.URL) string {
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
