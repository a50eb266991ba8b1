package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironicbadger/ktz-usa-stamps/internal/db"
	"github.com/ironicbadger/ktz-usa-stamps/internal/source"
)

// runWithData executes a command against the standard fixture.
func runWithData(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	dir := writeData(t, testParksJSON, testVisitsJSON)
	return executeCommand(append([]string{"--data", dir}, args...)...)
}

func TestListText(t *testing.T) {
	out, err := runWithData(t, "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"ID", "NAME", "VISITED", "Total: 3 parks", "2023-03-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	acad, yose, zion := strings.Index(out, "\nacad"), strings.Index(out, "\nyose"), strings.Index(out, "\nzion")
	if acad < 0 || !(acad < yose && yose < zion) {
		t.Errorf("rows not sorted by name:\n%s", out)
	}
}

func TestListFilters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all by name", nil, []string{"acad", "yose", "zion"}},
		{"visited", []string{"--status", "visited"}, []string{"yose", "zion"}},
		{"unvisited", []string{"--status", "unvisited"}, []string{"acad"}},
		{"state name", []string{"--state", "utah"}, []string{"zion"}},
		{"region", []string{"--region", "northeast"}, []string{"acad"}},
		{"query", []string{"-q", "angels"}, []string{"zion"}},
		{"rating sort", []string{"--sort", "rating"}, []string{"zion", "yose", "acad"}},
		{"visit date sort", []string{"--sort", "visit_date"}, []string{"zion", "yose", "acad"}},
		{"no match", []string{"-q", "grand canyon"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--format", "json", "list"}, tt.args...)
			out, err := runWithData(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var parks []struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal([]byte(out), &parks); err != nil {
				t.Fatalf("decoding output: %v\n%s", err, out)
			}
			got := make([]string, len(parks))
			for i, p := range parks {
				got[i] = p.ID
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListEmpty(t *testing.T) {
	out, err := runWithData(t, "list", "-q", "nothing matches this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No parks found.") {
		t.Errorf("output = %q", out)
	}
}

func TestListMissingVisits(t *testing.T) {
	isolateEnv(t)
	dir := writeData(t, testParksJSON, "")

	out, err := executeCommand("--data", dir, "list", "--status", "visited")
	if err != nil {
		t.Fatalf("missing visit log should not fail: %v", err)
	}
	if !strings.Contains(out, "No parks found.") {
		t.Errorf("output = %q", out)
	}
}

func TestCatalogUnavailable(t *testing.T) {
	for _, cmd := range []string{"list", "stats", "export"} {
		t.Run(cmd, func(t *testing.T) {
			isolateEnv(t)
			dir := writeData(t, "", testVisitsJSON)

			args := []string{"--data", dir, cmd}
			if cmd == "export" {
				args = append(args, "--out", filepath.Join(t.TempDir(), "p.db"))
			}
			_, err := executeCommand(args...)
			if !errors.Is(err, source.ErrCatalogUnavailable) {
				t.Errorf("error = %v, want ErrCatalogUnavailable", err)
			}
		})
	}
}

func TestShowText(t *testing.T) {
	out, err := runWithData(t, "show", "zion")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Zion (zion)",
		"States:   Utah",
		"Rating:   5 / 5",
		"Official: https://www.nps.gov/zion/index.htm",
		"Stamp:    /img/zion-stamp.png",
		"Visits (1):",
		"[2023-03-01] 5 / 5",
		"  Angels Landing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowUnvisited(t *testing.T) {
	out, err := runWithData(t, "show", "acad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Visited:  -") || !strings.Contains(out, "No visits logged yet.") {
		t.Errorf("output:\n%s", out)
	}
}

func TestShowJSON(t *testing.T) {
	out, err := runWithData(t, "--format", "json", "show", "yose")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var v struct {
		Park struct {
			ID      string `json:"id"`
			Visited bool   `json:"visited"`
		} `json:"park"`
		OfficialURL string `json:"official_url"`
		Entries     []struct {
			VisitDate string `json:"visit_date"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if v.Park.ID != "yose" || !v.Park.Visited {
		t.Errorf("park = %+v", v.Park)
	}
	if len(v.Entries) != 1 || v.Entries[0].VisitDate != "2021-06-01" {
		t.Errorf("entries = %+v", v.Entries)
	}
}

func TestShowNotFound(t *testing.T) {
	_, err := runWithData(t, "show", "ZION")
	if err == nil || !strings.Contains(err.Error(), "Park not found") {
		t.Errorf("error = %v, want park not found", err)
	}
}

func TestStats(t *testing.T) {
	out, err := runWithData(t, "stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Visited:  2 of 3 (67%)",
		"Stamps:   1",
		"Latest:   Zion (2023-03-01)",
		"Average:  4.5 / 5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsJSON(t *testing.T) {
	out, err := runWithData(t, "--format", "json", "stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var s struct {
		Visited      int     `json:"visited"`
		Total        int     `json:"total"`
		Progress     int     `json:"progress"`
		Average      float64 `json:"average_rating"`
		LatestParkID string  `json:"latest_park_id"`
	}
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if s.Visited != 2 || s.Total != 3 || s.Progress != 67 || s.Average != 4.5 || s.LatestParkID != "zion" {
		t.Errorf("stats = %+v", s)
	}
}

func TestStatsEmptyLog(t *testing.T) {
	isolateEnv(t)
	dir := writeData(t, testParksJSON, `{"visits": []}`)

	out, err := executeCommand("--data", dir, "stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Latest:   -") || !strings.Contains(out, "Average:  -") {
		t.Errorf("output:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passport.db")

	out, err := runWithData(t, "export", "--out", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Exported 3 parks (2 visited, 2 visits, 1 stamps)") {
		t.Errorf("output = %q", out)
	}

	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer func() { _ = database.Close() }()

	var rating sql.NullFloat64
	if err := database.QueryRow(`SELECT rating FROM parks WHERE park_id = 'yose'`).Scan(&rating); err != nil {
		t.Fatalf("query: %v", err)
	}
	if !rating.Valid || rating.Float64 != 4 {
		t.Errorf("yose rating = %+v, want 4", rating)
	}
}

func TestExportJSONAndRerun(t *testing.T) {
	isolateEnv(t)
	dir := writeData(t, testParksJSON, testVisitsJSON)
	path := filepath.Join(t.TempDir(), "passport.db")

	for i := 0; i < 2; i++ {
		out, err := executeCommand("--data", dir, "--format", "json", "export", "--out", path)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		var sum struct {
			Parks int `json:"parks"`
		}
		if err := json.Unmarshal([]byte(out), &sum); err != nil {
			t.Fatalf("decoding output: %v", err)
		}
		if sum.Parks != 3 {
			t.Errorf("run %d: parks = %d, want 3", i, sum.Parks)
		}
	}

	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer func() { _ = database.Close() }()

	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM parks`).Scan(&n); err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 3 {
		t.Errorf("rows after rerun = %d, want 3", n)
	}
}

func TestListJSONNonFiniteRating(t *testing.T) {
	isolateEnv(t)
	dir := writeData(t, testParksJSON, `{"visits": [{"unit_code": "ZION", "rating": "NaN", "visit_date": "2023-03-01"}]}`)

	out, err := executeCommand("--data", dir, "--format", "json", "list", "--sort", "rating")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parks []struct {
		ID     string  `json:"id"`
		Rating float64 `json:"rating"`
	}
	if err := json.Unmarshal([]byte(out), &parks); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(parks) != 3 {
		t.Fatalf("got %d parks, want 3", len(parks))
	}
	for _, p := range parks {
		if p.Rating != 0 {
			t.Errorf("%s rating = %v, want 0", p.ID, p.Rating)
		}
	}
}
