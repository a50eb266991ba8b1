// Package web provides the HTTP server and handlers for the passport web UI.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/ironicbadger/ktz-usa-stamps/internal/blog"
	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/source"
	"github.com/ironicbadger/ktz-usa-stamps/internal/state"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// loadErrorMessage is shown when the park catalog cannot be read.
const loadErrorMessage = "Unable to load data."

// Server is the web UI HTTP server. Data is reloaded from the source on
// every request, so edits to the data files show up without a restart.
type Server struct {
	src       source.Source
	snippets  *blog.Fetcher
	templates *template.Template
	mux       *http.ServeMux

	// newRand seeds the carousel shuffle.
	newRand func() *rand.Rand
}

// NewServer creates a web server reading from src. snippets may be nil to
// disable blog snippet fetching.
func NewServer(src source.Source, snippets *blog.Fetcher) (*Server, error) {
	funcMap := template.FuncMap{
		"formatDate":   tmplFormatDate,
		"formatRating": tmplFormatRating,
		"joinStates":   tmplJoinStates,
		"stateNames":   tmplStateNames,
		"plural":       tmplPlural,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		src:       src,
		snippets:  snippets,
		templates: tmpl,
		mux:       http.NewServeMux(),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/parks", s.handleAPIParks)
	s.mux.HandleFunc("/api/map", s.handleAPIMap)
	s.mux.HandleFunc("/map", s.handleMap)
	s.mux.HandleFunc("/park", s.handleDetail)
	s.mux.HandleFunc("/", s.handleList)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// load reads both data files and merges them.
func (s *Server) load(ctx context.Context) (*passport.Page, error) {
	ds, err := source.Load(ctx, s.src)
	if err != nil {
		return nil, err
	}
	return passport.NewPage(ds.Parks, ds.Visits), nil
}

// render executes a page template into a buffer and writes it with status.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering template", "template", name, "error", err)
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response", "error", err)
	}
}

func (s *Server) logLoadError(err error) {
	slog.Error("loading data", "source", s.src.String(), "error", err)
}

// renderLoadError shows the data-unavailable page.
func (s *Server) renderLoadError(w http.ResponseWriter, err error) {
	s.logLoadError(err)
	s.render(w, http.StatusServiceUnavailable, "error.html", errorData{
		Title:   "Unavailable",
		Message: loadErrorMessage,
	})
}

// Template helper functions

func tmplFormatDate(value string) string {
	t, ok := visit.ParseDate(value)
	if !ok {
		return "Unknown"
	}
	return t.Format("Jan 2, 2006")
}

func tmplFormatRating(r visit.Rating) string {
	if r == 0 {
		return ""
	}
	return "Rating " + r.String() + " / 5"
}

func tmplJoinStates(codes []string) string {
	return strings.Join(codes, ", ")
}

func tmplStateNames(codes []string) string {
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = state.DisplayName(code)
	}
	return strings.Join(names, ", ")
}

func tmplPlural(n int, word string) string {
	return fmt.Sprintf("%d %s(s)", n, word)
}
