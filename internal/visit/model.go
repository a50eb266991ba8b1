// Package visit provides the personal visit log domain model.
package visit

import (
	"strconv"
	"strings"
	"time"

	"github.com/ironicbadger/ktz-usa-stamps/internal/lenient"
)

// Fact is a labelled factoid noted during a visit.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Stamp is a photographed passport cancellation stamp.
type Stamp struct {
	Image    string `json:"image"`
	Caption  string `json:"caption,omitempty"`
	Date     string `json:"date,omitempty"`
	Featured bool   `json:"featured,omitempty"`
}

// Photo is a trip photo. Header marks the photo to use as the page banner.
type Photo struct {
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
	Header  bool   `json:"header,omitempty"`
}

// Rating is a 1-5 score. Zero means unrated.
type Rating float64

// String formats the rating without trailing zeros.
func (r Rating) String() string {
	return strconv.FormatFloat(float64(r), 'f', -1, 64)
}

// Entry is one trip to a park.
type Entry struct {
	VisitDate   string   `json:"visit_date,omitempty"`
	VisitNote   string   `json:"visit_note,omitempty"`
	Rating      Rating   `json:"rating,omitempty"`
	Review      string   `json:"review,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Facts       []Fact   `json:"facts,omitempty"`
	Stamps      []Stamp  `json:"stamps,omitempty"`
	Photos      []Photo  `json:"photos,omitempty"`
	BlogURL     string   `json:"blog_url,omitempty"`
	BlogSnippet string   `json:"blog_snippet,omitempty"`
}

// Date returns the parsed visit date.
func (e *Entry) Date() (time.Time, bool) {
	return ParseDate(e.VisitDate)
}

// IsZero reports whether the entry carries no visit data at all.
func (e *Entry) IsZero() bool {
	return e.VisitDate == "" &&
		e.VisitNote == "" &&
		e.Rating == 0 &&
		e.Review == "" &&
		e.Notes == "" &&
		len(e.Highlights) == 0 &&
		len(e.Facts) == 0 &&
		len(e.Stamps) == 0 &&
		len(e.Photos) == 0
}

// Text returns the entry's free-text fields for searching.
func (e *Entry) Text() []string {
	parts := []string{e.VisitNote, e.Review, e.Notes}
	parts = append(parts, e.Highlights...)
	for _, f := range e.Facts {
		parts = append(parts, f.Label, f.Value)
	}
	for _, p := range e.Photos {
		parts = append(parts, p.Caption)
	}
	for _, s := range e.Stamps {
		parts = append(parts, s.Caption)
	}
	return parts
}

// entryFromObject maps both the legacy flat record and a multi-visit entry;
// the two share field names. "entry" is accepted as an alias for "notes".
func entryFromObject(o lenient.Object) Entry {
	e := Entry{
		VisitDate:   strings.TrimSpace(o.String("visit_date")),
		VisitNote:   o.String("visit_note"),
		Rating:      Rating(o.Float("rating")),
		Review:      o.String("review"),
		Notes:       o.First("notes", "entry"),
		Highlights:  o.Strings("highlights"),
		BlogURL:     o.String("blog_url"),
		BlogSnippet: o.String("blog_snippet"),
	}
	for _, f := range o.Objects("facts") {
		fact := Fact{Label: f.String("label"), Value: f.String("value")}
		if fact.Label == "" && fact.Value == "" {
			continue
		}
		e.Facts = append(e.Facts, fact)
	}
	for _, s := range o.Objects("stamps") {
		e.Stamps = append(e.Stamps, Stamp{
			Image:    s.String("image"),
			Caption:  s.String("caption"),
			Date:     s.String("date"),
			Featured: s.Bool("featured"),
		})
	}
	for _, p := range o.Objects("photos") {
		e.Photos = append(e.Photos, Photo{
			Image:   p.String("image"),
			Caption: p.String("caption"),
			Header:  p.Bool("header"),
		})
	}
	return e
}
