package web

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	srv := testServerWithData(t, "", "")

	w := get(t, srv, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want status ok", w.Body.String())
	}
}

func TestAPIParks(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"all by name", "", []string{"acad", "stli", "yose"}},
		{"region", "?region=northeast", []string{"acad", "stli"}},
		{"type", "?type=National+Monument", []string{"stli"}},
		{"visited", "?status=visited", []string{"yose"}},
		{"rating sort", "?sort=rating", []string{"yose", "acad", "stli"}},
		{"state dash form", "?state=ME+%E2%80%94+Maine", []string{"acad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, "/api/parks"+tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			var resp struct {
				Count int `json:"count"`
				Stats struct {
					Visited int `json:"visited"`
					Total   int `json:"total"`
				} `json:"stats"`
				Parks []struct {
					ID      string `json:"id"`
					Visited bool   `json:"visited"`
				} `json:"parks"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Count != len(tt.wantIDs) || len(resp.Parks) != len(tt.wantIDs) {
				t.Fatalf("count = %d, parks = %d, want %d", resp.Count, len(resp.Parks), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if resp.Parks[i].ID != id {
					t.Errorf("park %d = %q, want %q", i, resp.Parks[i].ID, id)
				}
			}
			if resp.Stats.Visited != 1 || resp.Stats.Total != 3 {
				t.Errorf("stats = %+v, want whole-catalog totals", resp.Stats)
			}
		})
	}
}

func TestAPIParksEnrichedFields(t *testing.T) {
	srv := testServer(t)

	w := get(t, srv, "/api/parks?q=yosemite")
	var resp struct {
		Parks []map[string]any `json:"parks"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Parks) != 1 {
		t.Fatalf("got %d parks", len(resp.Parks))
	}
	p := resp.Parks[0]
	if p["visit_date"] != "2023-06-01" || p["rating"] != float64(5) {
		t.Errorf("latest entry fields = %v / %v", p["visit_date"], p["rating"])
	}
	if photos, _ := p["photos"].([]any); len(photos) != 3 {
		t.Errorf("photos = %v, want 3 concatenated", p["photos"])
	}
	if entries, _ := p["entries"].([]any); len(entries) != 2 {
		t.Errorf("entries = %v, want 2", p["entries"])
	}
}

func TestAPIParksLoadFailure(t *testing.T) {
	srv := testServerWithData(t, "", "")

	w := get(t, srv, "/api/parks")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(w.Body.String(), "Unable to load data.") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestAPIMethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/api/parks", "/api/map"} {
		r := httptest.NewRequest("POST", path, nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want %d", path, w.Code, http.StatusMethodNotAllowed)
		}
	}
}

func TestAPIMap(t *testing.T) {
	srv := testServer(t)

	type mapResponse struct {
		Count   int `json:"count"`
		Markers []struct {
			ID     string `json:"id"`
			Color  string `json:"color"`
			Radius int    `json:"radius"`
		} `json:"markers"`
		Viewport struct {
			Fit    bool `json:"fit"`
			Bounds [2]struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"bounds"`
			Center struct {
				Lat float64 `json:"lat"`
			} `json:"center"`
			Zoom float64 `json:"zoom"`
		} `json:"viewport"`
	}

	var all mapResponse
	if err := json.NewDecoder(get(t, srv, "/api/map").Body).Decode(&all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if all.Count != 3 || len(all.Markers) != 2 {
		t.Fatalf("count = %d, markers = %d", all.Count, len(all.Markers))
	}
	if all.Viewport.Fit || all.Viewport.Center.Lat != 39.2 || all.Viewport.Zoom != 3 {
		t.Errorf("viewport = %+v, want default", all.Viewport)
	}
	for _, m := range all.Markers {
		switch m.ID {
		case "yose":
			if m.Color != "#2f5f4a" || m.Radius != 8 {
				t.Errorf("visited marker = %+v", m)
			}
		case "acad":
			if m.Color != "#c7724e" || m.Radius != 6 {
				t.Errorf("unvisited marker = %+v", m)
			}
		}
	}

	var filtered mapResponse
	if err := json.NewDecoder(get(t, srv, "/api/map?q=a").Body).Decode(&filtered); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !filtered.Viewport.Fit {
		t.Fatal("expected fitted viewport with a search query")
	}
	sw, ne := filtered.Viewport.Bounds[0], filtered.Viewport.Bounds[1]
	if sw.Lat != 37.85 || sw.Lng != -119.55 || ne.Lat != 44.35 || ne.Lng != -68.21 {
		t.Errorf("bounds = %+v", filtered.Viewport.Bounds)
	}

	var none mapResponse
	if err := json.NewDecoder(get(t, srv, "/api/map?q=zzz").Body).Decode(&none); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if none.Viewport.Fit {
		t.Error("expected default viewport when no markers match")
	}
}

func TestAPIJSONEncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	apiJSON(w, map[string]float64{"rating": math.NaN()}, http.StatusOK)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}
	if !strings.Contains(w.Body.String(), "encode failed") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestAPIParksNonFiniteRating(t *testing.T) {
	visits := `{"visits": [
  {"unit_code": "YOSE", "rating": "NaN", "visit_date": "2023-06-01"},
  {"unit_code": "ACAD", "rating": "inf"}
]}`
	srv := testServerWithData(t, testParksJSON, visits)

	for _, target := range []string{"/api/parks", "/api/parks?sort=rating"} {
		w := get(t, srv, target)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want %d; body %q", target, w.Code, http.StatusOK, w.Body.String())
		}

		var resp struct {
			Parks []struct {
				ID      string  `json:"id"`
				Visited bool    `json:"visited"`
				Rating  float64 `json:"rating"`
			} `json:"parks"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("%s: decode: %v", target, err)
		}
		for _, p := range resp.Parks {
			if p.Rating != 0 {
				t.Errorf("%s: %s rating = %v, want 0", target, p.ID, p.Rating)
			}
			if p.ID == "acad" && p.Visited {
				t.Errorf("%s: acad with only a bad rating should not count as visited", target)
			}
			if p.ID == "yose" && !p.Visited {
				t.Errorf("%s: yose should still be visited", target)
			}
		}
	}
}
