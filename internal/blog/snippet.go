package blog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/sync/errgroup"

	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

const (
	// MaxSnippet is the longest snippet kept, in runes.
	MaxSnippet = 280

	maxBody     = 1 << 20
	concurrency = 4
)

// Fetcher downloads blog pages and extracts a snippet from each.
type Fetcher struct {
	httpClient *http.Client
	allow      *Allowlist
}

// NewFetcher creates a fetcher restricted to the given allow-list.
func NewFetcher(allow *Allowlist) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		allow:      allow,
	}
}

// Snippet fetches raw and returns its description or first paragraph.
func (f *Fetcher) Snippet(ctx context.Context, raw string) (snippet string, err error) {
	u, err := f.allow.Resolve(raw)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}
	return Truncate(Extract(doc), MaxSnippet), nil
}

// Prefetch fills BlogSnippet on entries that have a blog URL but no snippet.
// Entries are updated in place. Failures are logged and leave the entry as is.
func (f *Fetcher) Prefetch(ctx context.Context, entries []visit.Entry) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range entries {
		e := &entries[i]
		if e.BlogURL == "" || e.BlogSnippet != "" {
			continue
		}
		if !f.allow.Allowed(e.BlogURL) {
			slog.Debug("skipping blog snippet", "url", e.BlogURL, "reason", "origin not allowed")
			continue
		}
		g.Go(func() error {
			s, err := f.Snippet(gctx, e.BlogURL)
			if err != nil {
				slog.Warn("fetching blog snippet", "url", e.BlogURL, "error", err)
				return nil
			}
			e.BlogSnippet = s
			return nil
		})
	}
	_ = g.Wait()
}

// Extract returns og:description, then the description meta tag, then the
// text of the first non-empty paragraph.
func Extract(doc *html.Node) string {
	var ogDesc, desc, para string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Meta:
				content := strings.TrimSpace(attr(n, "content"))
				switch {
				case strings.EqualFold(attr(n, "property"), "og:description"):
					if ogDesc == "" {
						ogDesc = content
					}
				case strings.EqualFold(attr(n, "name"), "description"):
					if desc == "" {
						desc = content
					}
				}
			case atom.P:
				if para == "" {
					para = collapse(text(n))
				}
				return
			case atom.Script, atom.Style:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	switch {
	case ogDesc != "":
		return collapse(ogDesc)
	case desc != "":
		return collapse(desc)
	default:
		return para
	}
}

// Truncate shortens s to at most n runes, cutting at a word boundary and
// appending an ellipsis when anything was removed.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	cut := n - 1
	for i := cut; i > n/2; i-- {
		if unicode.IsSpace(r[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(r[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
