// Package detail assembles the single-park page.
package detail

import (
	"sort"
	"time"

	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

// Status describes whether a detail page could be resolved.
type Status int

const (
	StatusOK Status = iota
	StatusMissingID
	StatusNotFound
)

// Message returns the text shown in place of the page for non-OK states.
func (s Status) Message() string {
	switch s {
	case StatusMissingID:
		return "Missing park id"
	case StatusNotFound:
		return "Park not found"
	default:
		return ""
	}
}

// Image is the banner shown at the top of the page.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Credit  string `json:"credit,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

// View is everything the detail template needs.
type View struct {
	Status        Status                 `json:"-"`
	Park          *passport.EnrichedPark `json:"park,omitempty"`
	Header        *Image                 `json:"header,omitempty"`
	FeaturedStamp *visit.Stamp           `json:"featured_stamp,omitempty"`
	OfficialURL   string                 `json:"official_url,omitempty"`
	Entries       []visit.Entry          `json:"entries,omitempty"`
}

// Build resolves id against the page. A missing or unknown id yields a
// non-OK status rather than an error.
func Build(pg *passport.Page, id string) View {
	if id == "" {
		return View{Status: StatusMissingID}
	}
	p := pg.Find(id)
	if p == nil {
		return View{Status: StatusNotFound}
	}
	return View{
		Status:        StatusOK,
		Park:          p,
		Header:        HeaderImage(p),
		FeaturedStamp: FeaturedStamp(p.Stamps),
		OfficialURL:   p.OfficialURL(),
		Entries:       NewestFirst(p.Entries),
	}
}

// HeaderImage picks the banner image. In order: a photo flagged as header on
// the latest visit, the latest visit's only photo, a flagged photo from any
// visit, the only photo across all visits, then the catalog hero image.
// Several unflagged photos at a level are not a choice, so selection falls
// through to the next level.
func HeaderImage(p *passport.EnrichedPark) *Image {
	if latest := p.LatestEntry(); latest != nil {
		if img := pick(withImage(latest.Photos)); img != nil {
			return img
		}
	}
	if img := pick(withImage(p.Photos)); img != nil {
		return img
	}
	if hero := p.Hero(); hero != nil {
		return &Image{URL: hero.URL, Caption: hero.Caption, Credit: hero.Credit, Alt: hero.Alt}
	}
	return nil
}

// pick returns the first flagged photo, or the sole photo when there is one.
func pick(photos []visit.Photo) *Image {
	for _, ph := range photos {
		if ph.Header {
			return photoImage(ph)
		}
	}
	if len(photos) == 1 {
		return photoImage(photos[0])
	}
	return nil
}

func photoImage(ph visit.Photo) *Image {
	return &Image{URL: ph.Image, Caption: ph.Caption, Alt: ph.Caption}
}

func withImage(photos []visit.Photo) []visit.Photo {
	var out []visit.Photo
	for _, ph := range photos {
		if ph.Image != "" {
			out = append(out, ph)
		}
	}
	return out
}

// FeaturedStamp picks the stamp to highlight: the first flagged stamp, else
// the earliest dated stamp, else the first stamp.
func FeaturedStamp(stamps []visit.Stamp) *visit.Stamp {
	if len(stamps) == 0 {
		return nil
	}
	for i := range stamps {
		if stamps[i].Featured {
			s := stamps[i]
			return &s
		}
	}
	best := -1
	var bestTime time.Time
	for i := range stamps {
		t, ok := visit.ParseDate(stamps[i].Date)
		if !ok {
			continue
		}
		if best < 0 || t.Before(bestTime) {
			best = i
			bestTime = t
		}
	}
	if best < 0 {
		best = 0
	}
	s := stamps[best]
	return &s
}

// NewestFirst returns a copy of entries ordered by date descending.
// Undated entries go last in their original order.
func NewestFirst(entries []visit.Entry) []visit.Entry {
	out := append([]visit.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := out[i].Date()
		tj, jok := out[j].Date()
		if iok != jok {
			return iok
		}
		return iok && ti.After(tj)
	})
	return out
}
