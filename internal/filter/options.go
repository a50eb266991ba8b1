package filter

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/state"
)

// StateOption is one suggestion in the state filter's datalist.
type StateOption struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Regions returns the distinct non-empty regions, collated.
func Regions(parks []*passport.EnrichedPark) []string {
	return distinct(parks, func(p *passport.EnrichedPark) []string { return []string{p.Region} })
}

// Types returns the distinct non-empty park types, collated.
func Types(parks []*passport.EnrichedPark) []string {
	return distinct(parks, func(p *passport.EnrichedPark) []string { return []string{p.Type} })
}

// StateOptions returns one "CODE — Name" option per state present in the
// catalog, ordered by display name.
func StateOptions(parks []*passport.EnrichedPark) []StateOption {
	seen := make(map[string]bool)
	var codes []string
	for _, p := range parks {
		for _, code := range p.States {
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}

	col := collate.New(language.English)
	sort.SliceStable(codes, func(i, j int) bool {
		return col.CompareString(state.DisplayName(codes[i]), state.DisplayName(codes[j])) < 0
	})

	opts := make([]StateOption, 0, len(codes))
	for _, code := range codes {
		name := state.DisplayName(code)
		opts = append(opts, StateOption{Code: code, Name: name, Value: code + " — " + name})
	}
	return opts
}

func distinct(parks []*passport.EnrichedPark, values func(*passport.EnrichedPark) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range parks {
		for _, v := range values(p) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	col := collate.New(language.English)
	col.SortStrings(out)
	return out
}
