package filter

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/state"
)

// Sort keys accepted by Sort. Anything else sorts by name.
const (
	SortName      = "name"
	SortVisitDate = "visit_date"
	SortRating    = "rating"
	SortState     = "state"
)

var epoch = time.Unix(0, 0).UTC()

// Sort orders parks in place. Name and state sort ascending using English
// collation; visit date and rating sort descending. Rating and state ties
// fall back to name. Visit date ties keep their existing order.
func Sort(parks []*passport.EnrichedPark, key string) {
	col := collate.New(language.English)
	byName := func(a, b *passport.EnrichedPark) bool {
		return col.CompareString(a.Name, b.Name) < 0
	}

	var less func(a, b *passport.EnrichedPark) bool
	switch key {
	case SortVisitDate:
		less = func(a, b *passport.EnrichedPark) bool {
			return visitTime(b).Before(visitTime(a))
		}
	case SortRating:
		less = func(a, b *passport.EnrichedPark) bool {
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return byName(a, b)
		}
	case SortState:
		less = func(a, b *passport.EnrichedPark) bool {
			if c := col.CompareString(firstStateName(a), firstStateName(b)); c != 0 {
				return c < 0
			}
			return byName(a, b)
		}
	default:
		less = byName
	}

	sort.SliceStable(parks, func(i, j int) bool {
		return less(parks[i], parks[j])
	})
}

func visitTime(p *passport.EnrichedPark) time.Time {
	if t, ok := p.VisitTime(); ok {
		return t
	}
	return epoch
}

func firstStateName(p *passport.EnrichedPark) string {
	if len(p.States) == 0 {
		return ""
	}
	return state.DisplayName(p.States[0])
}
