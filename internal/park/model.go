// Package park provides the park catalog domain model.
package park

import (
	"encoding/json"
	"strings"

	"github.com/ironicbadger/ktz-usa-stamps/internal/lenient"
)

// HeroImage is a banner photo supplied by the catalog or the NPS API.
type HeroImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Credit  string `json:"credit,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

// Park is one unit of the park catalog. Catalog entries are never modified
// by the visit log except for the NPS link and hero image overrides.
type Park struct {
	ID           string     `json:"id"`
	UnitCode     string     `json:"unit_code"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Region       string     `json:"region"`
	States       []string   `json:"states"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	NPSURL       string     `json:"nps_url,omitempty"`
	HeroImage    *HeroImage `json:"hero_image,omitempty"`
	HeroImageURL string     `json:"hero_image_url,omitempty"`
}

// Key returns the identity used to join a park with its visit record.
func (p *Park) Key() string {
	if p.UnitCode != "" {
		return p.UnitCode
	}
	return p.ID
}

// HasCoordinates reports whether the park can be placed on a map.
// Zero is treated as missing, as the catalog uses it for unknown positions.
func (p *Park) HasCoordinates() bool {
	return p.Lat != 0 && p.Lng != 0
}

// OfficialURL returns the park's NPS page, derived from the unit code when
// the catalog has no explicit link.
func (p *Park) OfficialURL() string {
	if p.NPSURL != "" {
		return p.NPSURL
	}
	if p.UnitCode == "" {
		return ""
	}
	return "https://www.nps.gov/" + strings.ToLower(p.UnitCode) + "/index.htm"
}

// Hero returns the catalog banner image, preferring the structured form.
func (p *Park) Hero() *HeroImage {
	if p.HeroImage != nil && p.HeroImage.URL != "" {
		return p.HeroImage
	}
	if p.HeroImageURL != "" {
		return &HeroImage{URL: p.HeroImageURL}
	}
	return nil
}

// FromObject builds a park from a decoded catalog object.
func FromObject(o lenient.Object) Park {
	p := Park{
		ID:           o.String("id"),
		UnitCode:     o.String("unit_code"),
		Name:         o.String("name"),
		Type:         o.String("type"),
		Region:       o.String("region"),
		States:       o.Strings("states"),
		Lat:          o.Float("lat"),
		Lng:          o.Float("lng"),
		NPSURL:       o.String("nps_url"),
		HeroImage:    HeroFromObject(o.Object("hero_image")),
		HeroImageURL: o.String("hero_image_url"),
	}
	return p
}

// HeroFromObject decodes a hero_image object. Objects without a URL yield nil.
func HeroFromObject(o lenient.Object) *HeroImage {
	if o == nil || o.String("url") == "" {
		return nil
	}
	return &HeroImage{
		URL:     o.String("url"),
		Caption: o.String("caption"),
		Credit:  o.String("credit"),
		Alt:     o.String("alt"),
	}
}

// Catalog is the top-level shape of parks.json.
type Catalog struct {
	Parks []Park `json:"parks"`
}

// DecodeCatalog parses parks.json. A missing "parks" key yields an empty catalog;
// malformed entries are skipped.
func DecodeCatalog(data []byte) (*Catalog, error) {
	o, err := lenient.Parse(data)
	if err != nil {
		return nil, err
	}
	cat := &Catalog{}
	for _, obj := range o.Objects("parks") {
		cat.Parks = append(cat.Parks, FromObject(obj))
	}
	return cat, nil
}

// Encode renders the catalog as indented JSON with a trailing newline.
func (c *Catalog) Encode() ([]byte, error) {
	if c.Parks == nil {
		c.Parks = []Park{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
