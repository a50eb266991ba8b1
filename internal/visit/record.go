package visit

import (
	"encoding/json"

	"github.com/ironicbadger/ktz-usa-stamps/internal/lenient"
	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
)

// Shape records which layout a visit record was written in.
type Shape int

const (
	// ShapeNone is a record with no visit data (for example a seeded blank file).
	ShapeNone Shape = iota
	// ShapeLegacy is a single flat visit with fields on the record itself.
	ShapeLegacy
	// ShapeMulti is a record with a "visits" list of entries.
	ShapeMulti
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeLegacy:
		return "legacy"
	case ShapeMulti:
		return "multi"
	default:
		return "none"
	}
}

// Record is a park's visit history. Whatever shape it was stored in, Entries
// holds the canonical list of trips in log order.
type Record struct {
	Key       string          `json:"unit_code"`
	Shape     Shape           `json:"-"`
	Entries   []Entry         `json:"visits"`
	NPSURL    string          `json:"nps_url,omitempty"`
	HeroImage *park.HeroImage `json:"hero_image,omitempty"`
}

// UnmarshalJSON decodes either record shape and normalizes it to Entries.
func (r *Record) UnmarshalJSON(data []byte) error {
	o, err := lenient.Parse(data)
	if err != nil {
		return err
	}
	*r = RecordFromObject(o)
	return nil
}

// RecordFromObject normalizes a decoded visit record.
//
// A non-empty "visits" list wins. Otherwise, if any legacy visit field holds
// a value, the flat fields become a single entry. Otherwise the record has
// no entries.
func RecordFromObject(o lenient.Object) Record {
	r := Record{
		Key:       o.First("unit_code", "id", "park_id"),
		NPSURL:    o.String("nps_url"),
		HeroImage: park.HeroFromObject(o.Object("hero_image")),
	}

	if items := o.Objects("visits"); len(items) > 0 {
		r.Shape = ShapeMulti
		r.Entries = make([]Entry, 0, len(items))
		for _, item := range items {
			r.Entries = append(r.Entries, entryFromObject(item))
		}
		return r
	}

	legacy := entryFromObject(o)
	legacy.BlogURL = ""
	legacy.BlogSnippet = ""
	if HasLegacyVisit(&legacy) {
		r.Shape = ShapeLegacy
		r.Entries = []Entry{legacy}
	}
	return r
}

// HasLegacyVisit reports whether a flat record carries any visit field.
func HasLegacyVisit(e *Entry) bool {
	return !e.IsZero()
}

// Log is the decoded visits.json document.
type Log struct {
	Visits []Record `json:"visits"`
}

// DecodeLog parses visits.json. Non-object records are skipped.
func DecodeLog(data []byte) (*Log, error) {
	o, err := lenient.Parse(data)
	if err != nil {
		return nil, err
	}
	log := &Log{}
	for _, obj := range o.Objects("visits") {
		log.Visits = append(log.Visits, RecordFromObject(obj))
	}
	return log, nil
}

// Encode renders the log in the multi-visit shape.
func (l *Log) Encode() ([]byte, error) {
	if l.Visits == nil {
		l.Visits = []Record{}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
