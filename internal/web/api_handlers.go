package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ironicbadger/ktz-usa-stamps/internal/filter"
	"github.com/ironicbadger/ktz-usa-stamps/internal/mapview"
	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code. The body is
// encoded before any header is sent so an encode failure still yields a 500.
func apiJSON(w http.ResponseWriter, data any, code int) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encode failed"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("writing JSON response", "error", err)
	}
}

// parksResponse is the body of GET /api/parks.
type parksResponse struct {
	Count    int                      `json:"count"`
	Criteria filter.Criteria          `json:"criteria"`
	Stats    passport.Stats           `json:"stats"`
	Parks    []*passport.EnrichedPark `json:"parks"`
}

// handleHealth reports liveness without touching the data source.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleAPIParks returns the filtered, sorted park list.
func (s *Server) handleAPIParks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pg, err := s.load(r.Context())
	if err != nil {
		s.logLoadError(err)
		apiError(w, loadErrorMessage, http.StatusServiceUnavailable)
		return
	}

	c := filter.FromQuery(r.URL.Query())
	parks := filter.Apply(pg.Parks, c)
	apiJSON(w, parksResponse{
		Count:    len(parks),
		Criteria: c,
		Stats:    pg.Stats,
		Parks:    parks,
	}, http.StatusOK)
}

// handleAPIMap returns markers and the viewport for the filtered parks.
func (s *Server) handleAPIMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pg, err := s.load(r.Context())
	if err != nil {
		s.logLoadError(err)
		apiError(w, loadErrorMessage, http.StatusServiceUnavailable)
		return
	}

	c := filter.FromQuery(r.URL.Query())
	apiJSON(w, mapview.Build(filter.Apply(pg.Parks, c), c.Active()), http.StatusOK)
}
