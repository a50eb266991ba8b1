package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ironicbadger/ktz-usa-stamps/internal/detail"
	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/state"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printParkTable prints a list of parks as a formatted table.
func printParkTable(out io.Writer, parks []*passport.EnrichedPark) error {
	if len(parks) == 0 {
		fmt.Fprintln(out, "No parks found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATES\tVISITED\tRATING"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t----\t------\t-------\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range parks {
		states := "-"
		if len(p.States) > 0 {
			states = strings.Join(p.States, ",")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, truncate(p.Name, 40), truncate(p.Type, 28), states, visitedLabel(p), formatRating(p.Rating)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d parks\n", len(parks))
	return nil
}

// printParkDetail prints a single park with its visits in text format.
func printParkDetail(w io.Writer, v detail.View) {
	p := v.Park
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	if p.Type != "" {
		fmt.Fprintf(w, "  Type:     %s\n", p.Type)
	}
	if p.Region != "" {
		fmt.Fprintf(w, "  Region:   %s\n", p.Region)
	}
	if len(p.States) > 0 {
		names := make([]string, len(p.States))
		for i, code := range p.States {
			names[i] = state.DisplayName(code)
		}
		fmt.Fprintf(w, "  States:   %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "  Visited:  %s\n", visitedLabel(p))
	if p.Rating > 0 {
		fmt.Fprintf(w, "  Rating:   %s / 5\n", p.Rating)
	}
	if v.OfficialURL != "" {
		fmt.Fprintf(w, "  Official: %s\n", v.OfficialURL)
	}
	if v.Header != nil {
		fmt.Fprintf(w, "  Banner:   %s\n", v.Header.URL)
	}
	if v.FeaturedStamp != nil {
		fmt.Fprintf(w, "  Stamp:    %s\n", v.FeaturedStamp.Image)
	}
	fmt.Fprintf(w, "  Stamps:   %d\n", len(p.Stamps))
	fmt.Fprintf(w, "  Photos:   %d\n", len(p.Photos))
	fmt.Fprintln(w)

	if len(v.Entries) == 0 {
		fmt.Fprintln(w, "No visits logged yet.")
		return
	}
	fmt.Fprintf(w, "Visits (%d):\n", len(v.Entries))
	printEntries(w, v.Entries)
}

// printEntries prints visit entries in text format.
func printEntries(w io.Writer, entries []visit.Entry) {
	for _, e := range entries {
		date := e.VisitDate
		if date == "" {
			date = "undated"
		}
		if e.Rating > 0 {
			fmt.Fprintf(w, "[%s] %s / 5\n", date, e.Rating)
		} else {
			fmt.Fprintf(w, "[%s]\n", date)
		}
		for _, text := range []string{e.VisitNote, e.Review, e.Notes} {
			if text != "" {
				fmt.Fprintf(w, "  %s\n", text)
			}
		}
		for _, h := range e.Highlights {
			fmt.Fprintf(w, "  * %s\n", h)
		}
		for _, f := range e.Facts {
			fmt.Fprintf(w, "  %s: %s\n", f.Label, f.Value)
		}
		if e.BlogURL != "" {
			fmt.Fprintf(w, "  Blog: %s\n", e.BlogURL)
		}
		fmt.Fprintln(w)
	}
}

// printStats prints the progress summary in text format.
func printStats(w io.Writer, s passport.Stats) {
	fmt.Fprintf(w, "Visited:  %d of %d (%d%%)\n", s.Visited, s.Total, s.Progress)
	fmt.Fprintf(w, "Stamps:   %d\n", s.Stamps)
	latest := "-"
	if s.LatestPark != nil {
		latest = fmt.Sprintf("%s (%s)", s.LatestPark.Name, s.LatestVisit.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "Latest:   %s\n", latest)
	fmt.Fprintf(w, "Average:  %s\n", s.AverageRatingText())
}

// visitedLabel returns the latest visit date, "yes" for an undated visit,
// or "-" for an unvisited park.
func visitedLabel(p *passport.EnrichedPark) string {
	switch {
	case !p.Visited:
		return "-"
	case p.VisitDate == "":
		return "yes"
	default:
		return p.VisitDate
	}
}

// formatRating returns the rating as text, or "-" when unrated.
func formatRating(r visit.Rating) string {
	if r <= 0 {
		return "-"
	}
	return r.String()
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
