package blog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

func TestAllowlist(t *testing.T) {
	a, err := NewAllowlist("https://parks.example.com/passport/", "blog.example.org")
	if err != nil {
		t.Fatalf("NewAllowlist: %v", err)
	}

	tests := []struct {
		raw  string
		want bool
	}{
		{"https://parks.example.com/posts/zion", true},
		{"/posts/zion", true},
		{"posts/zion", true},
		{"https://BLOG.example.org/2023/yosemite", true},
		{"http://blog.example.org/2023/yosemite", false},
		{"https://evil.example.net/", false},
		{"https://parks.example.com:8443/", false},
		{"javascript:alert(1)", false},
	}
	for _, tt := range tests {
		if got := a.Allowed(tt.raw); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	u, err := a.Resolve("/posts/zion")
	if err != nil || u.String() != "https://parks.example.com/posts/zion" {
		t.Errorf("Resolve = %v, %v", u, err)
	}
	if _, err := a.Resolve("https://evil.example.net/"); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("err = %v, want ErrNotAllowed", err)
	}
}

func TestAllowlistNoSite(t *testing.T) {
	a, err := NewAllowlist("", "")
	if err != nil {
		t.Fatal(err)
	}
	if a.Allowed("/posts/zion") || a.Allowed("https://example.com/") {
		t.Error("empty allow-list should refuse everything")
	}
	if _, err := NewAllowlist("ftp://example.com", ""); err == nil {
		t.Error("expected error for non-http site URL")
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "og description wins",
			page: `<html><head><meta name="description" content="plain"><meta property="og:description" content=" Open  graph "></head><body><p>para</p></body></html>`,
			want: "Open graph",
		},
		{
			name: "meta description",
			page: `<html><head><meta name="Description" content="Hiking the Mist Trail."></head><body><p>para</p></body></html>`,
			want: "Hiking the Mist Trail.",
		},
		{
			name: "first non-empty paragraph",
			page: `<html><body><script>var p = "<p>no</p>";</script><p>  </p><p>We <em>finally</em>
				made it.</p><p>second</p></body></html>`,
			want: "We finally made it.",
		},
		{
			name: "nothing",
			page: `<html><body><div>text</div></body></html>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader(tt.page))
			if err != nil {
				t.Fatal(err)
			}
			if got := Extract(doc); got != tt.want {
				t.Errorf("Extract = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	got := Truncate("The valley floor was quiet at dawn, then busy by noon.", 20)
	if got != "The valley floor…" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("é", 50)
	if got := Truncate(long, 10); utf8.RuneCountInString(got) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("got %q", got)
	}
}

func TestPrefetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/posts/ok":
			fmt.Fprint(w, `<html><head><meta name="description" content="A good day."></head></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a, err := NewAllowlist(srv.URL, "")
	if err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(a)

	entries := []visit.Entry{
		{BlogURL: srv.URL + "/posts/ok"},
		{BlogURL: "/posts/missing"},
		{BlogURL: "https://elsewhere.example.com/post"},
		{BlogURL: srv.URL + "/posts/ok", BlogSnippet: "kept"},
		{},
	}
	f.Prefetch(context.Background(), entries)

	if entries[0].BlogSnippet != "A good day." {
		t.Errorf("entry 0 snippet = %q", entries[0].BlogSnippet)
	}
	if entries[1].BlogSnippet != "" {
		t.Errorf("failed fetch should leave snippet empty, got %q", entries[1].BlogSnippet)
	}
	if entries[2].BlogSnippet != "" {
		t.Errorf("disallowed origin fetched: %q", entries[2].BlogSnippet)
	}
	if entries[3].BlogSnippet != "kept" {
		t.Errorf("existing snippet overwritten: %q", entries[3].BlogSnippet)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hits = %d, want 2", n)
	}
}
