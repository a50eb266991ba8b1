// Package filter narrows and orders the merged park list for display.
package filter

import (
	"net/url"
	"strings"

	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/state"
)

// All is the sentinel value that disables a select-style predicate.
const All = "all"

// Visit status predicate values.
const (
	StatusVisited   = "visited"
	StatusUnvisited = "unvisited"
)

// Criteria holds the predicates and sort key chosen in the UI.
// Empty strings and All bypass a predicate.
type Criteria struct {
	Query  string `json:"q,omitempty"`
	Region string `json:"region,omitempty"`
	State  string `json:"state,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// FromQuery reads criteria from URL query parameters.
func FromQuery(v url.Values) Criteria {
	return Criteria{
		Query:  v.Get("q"),
		Region: v.Get("region"),
		State:  v.Get("state"),
		Type:   v.Get("type"),
		Status: v.Get("status"),
		Sort:   v.Get("sort"),
	}
}

// Active reports whether any predicate narrows the result. The sort key
// does not count.
func (c Criteria) Active() bool {
	return c.Query != "" ||
		isSet(c.Region) ||
		isSet(c.Type) ||
		isSet(c.Status) ||
		!state.ParseInput(c.State).IsZero()
}

// Apply returns the parks matching every predicate, sorted by c.Sort.
// The input slice is not reordered.
func Apply(parks []*passport.EnrichedPark, c Criteria) []*passport.EnrichedPark {
	query := strings.ToLower(c.Query)
	st := state.ParseInput(c.State)

	out := make([]*passport.EnrichedPark, 0, len(parks))
	for _, p := range parks {
		if query != "" && !strings.Contains(SearchText(p), query) {
			continue
		}
		if isSet(c.Region) && !strings.EqualFold(p.Region, c.Region) {
			continue
		}
		if !st.Matches(p.States) {
			continue
		}
		if isSet(c.Type) && !strings.EqualFold(p.Type, c.Type) {
			continue
		}
		if !matchesStatus(p, c.Status) {
			continue
		}
		out = append(out, p)
	}

	Sort(out, c.Sort)
	return out
}

// SearchText builds the lower-cased blob the free-text query is matched
// against: catalog fields, state codes and names, and the text of every visit.
func SearchText(p *passport.EnrichedPark) string {
	pieces := []string{
		p.Name,
		p.Type,
		p.Region,
		p.UnitCode,
		strings.Join(p.States, " "),
	}
	for _, code := range p.States {
		pieces = append(pieces, state.Name(code))
	}
	pieces = append(pieces, p.Review, p.Notes)
	for i := range p.Entries {
		pieces = append(pieces, p.Entries[i].Text()...)
	}
	return strings.ToLower(strings.Join(pieces, " "))
}

func matchesStatus(p *passport.EnrichedPark, status string) bool {
	switch status {
	case StatusVisited:
		return p.Visited
	case StatusUnvisited:
		return !p.Visited
	case "", All:
		return true
	}
	return false
}

func isSet(v string) bool {
	return v != "" && v != All
}
