// Package passport joins the park catalog with the visit log and derives
// the per-park view used by every page.
package passport

import (
	"time"

	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

// EnrichedPark is a catalog park with its visit history folded in.
// Scalar visit fields come from the latest entry; stamps and photos are
// collected from every entry.
type EnrichedPark struct {
	park.Park

	Visited     bool          `json:"visited"`
	VisitDate   string        `json:"visit_date,omitempty"`
	VisitNote   string        `json:"visit_note,omitempty"`
	Rating      visit.Rating  `json:"rating,omitempty"`
	Review      string        `json:"review,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Highlights  []string      `json:"highlights"`
	Facts       []visit.Fact  `json:"facts"`
	BlogURL     string        `json:"blog_url,omitempty"`
	BlogSnippet string        `json:"blog_snippet,omitempty"`
	Stamps      []visit.Stamp `json:"stamps"`
	Photos      []visit.Photo `json:"photos"`
	Entries     []visit.Entry `json:"entries"`
	Latest      int           `json:"-"`
}

// LatestEntry returns the most recent visit, or nil for unvisited parks.
func (p *EnrichedPark) LatestEntry() *visit.Entry {
	if p.Latest < 0 || p.Latest >= len(p.Entries) {
		return nil
	}
	return &p.Entries[p.Latest]
}

// VisitTime returns the parsed date of the latest visit.
func (p *EnrichedPark) VisitTime() (time.Time, bool) {
	return visit.ParseDate(p.VisitDate)
}

// Merge performs a left outer join of parks with visit records on the
// normalized park key. Every park appears once, in catalog order. When the
// log has duplicate keys the last record wins. Inputs are not modified.
func Merge(parks []park.Park, records []visit.Record) []*EnrichedPark {
	byKey := make(map[string]*visit.Record, len(records))
	for i := range records {
		byKey[visit.NormalizeKey(records[i].Key)] = &records[i]
	}

	out := make([]*EnrichedPark, 0, len(parks))
	for _, p := range parks {
		out = append(out, enrich(p, byKey[visit.NormalizeKey(p.Key())]))
	}
	return out
}

func enrich(p park.Park, rec *visit.Record) *EnrichedPark {
	p.States = append([]string(nil), p.States...)
	ep := &EnrichedPark{
		Park:       p,
		Latest:     -1,
		Highlights: []string{},
		Facts:      []visit.Fact{},
		Stamps:     []visit.Stamp{},
		Photos:     []visit.Photo{},
		Entries:    []visit.Entry{},
	}
	if rec == nil {
		return ep
	}

	if rec.NPSURL != "" {
		ep.NPSURL = rec.NPSURL
	}
	if rec.HeroImage != nil {
		hero := *rec.HeroImage
		ep.HeroImage = &hero
	}

	if len(rec.Entries) == 0 {
		return ep
	}

	for _, e := range rec.Entries {
		ep.Entries = append(ep.Entries, cloneEntry(e))
	}
	for _, e := range ep.Entries {
		ep.Stamps = append(ep.Stamps, e.Stamps...)
		ep.Photos = append(ep.Photos, e.Photos...)
	}

	ep.Visited = true
	ep.Latest = LatestIndex(ep.Entries)
	latest := ep.Entries[ep.Latest]
	ep.VisitDate = latest.VisitDate
	ep.VisitNote = latest.VisitNote
	ep.Rating = latest.Rating
	ep.Review = latest.Review
	ep.Notes = latest.Notes
	ep.BlogURL = latest.BlogURL
	ep.BlogSnippet = latest.BlogSnippet
	if latest.Highlights != nil {
		ep.Highlights = append([]string{}, latest.Highlights...)
	}
	if latest.Facts != nil {
		ep.Facts = append([]visit.Fact{}, latest.Facts...)
	}
	return ep
}

// LatestIndex returns the index of the most recently dated entry. Entries
// without a parseable date are ignored; ties keep the earlier entry. When no
// entry has a date the first entry is chosen. Returns -1 for an empty list.
func LatestIndex(entries []visit.Entry) int {
	if len(entries) == 0 {
		return -1
	}
	best := -1
	var bestTime time.Time
	for i := range entries {
		t, ok := entries[i].Date()
		if !ok {
			continue
		}
		if best < 0 || t.After(bestTime) {
			best = i
			bestTime = t
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func cloneEntry(e visit.Entry) visit.Entry {
	e.Highlights = append([]string(nil), e.Highlights...)
	e.Facts = append([]visit.Fact(nil), e.Facts...)
	e.Stamps = append([]visit.Stamp(nil), e.Stamps...)
	e.Photos = append([]visit.Photo(nil), e.Photos...)
	return e
}
