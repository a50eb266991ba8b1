package passport

import (
	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

// Page owns the merged parks for one page view or command run. It is built
// once from freshly loaded data and handed to renderers by reference.
type Page struct {
	Parks []*EnrichedPark
	Stats Stats

	byID map[string]*EnrichedPark
}

// NewPage merges the catalog and log and indexes the result by park id.
func NewPage(parks []park.Park, records []visit.Record) *Page {
	merged := Merge(parks, records)
	pg := &Page{
		Parks: merged,
		Stats: ComputeStats(merged),
		byID:  make(map[string]*EnrichedPark, len(merged)),
	}
	for _, p := range merged {
		if _, dup := pg.byID[p.ID]; !dup {
			pg.byID[p.ID] = p
		}
	}
	return pg
}

// Find returns the park with the exact id, or nil.
func (pg *Page) Find(id string) *EnrichedPark {
	return pg.byID[id]
}
