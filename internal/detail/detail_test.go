package detail

import (
	"testing"

	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

func enriched(t *testing.T, p park.Park, entries ...visit.Entry) *passport.EnrichedPark {
	t.Helper()
	var recs []visit.Record
	if len(entries) > 0 {
		recs = []visit.Record{{Key: p.Key(), Entries: entries}}
	}
	return passport.Merge([]park.Park{p}, recs)[0]
}

func TestBuildStatuses(t *testing.T) {
	pg := passport.NewPage([]park.Park{{ID: "yose", UnitCode: "YOSE", Name: "Yosemite"}}, nil)

	if v := Build(pg, ""); v.Status != StatusMissingID || v.Status.Message() != "Missing park id" {
		t.Errorf("empty id: status = %v", v.Status)
	}
	if v := Build(pg, "nope"); v.Status != StatusNotFound || v.Status.Message() != "Park not found" {
		t.Errorf("unknown id: status = %v", v.Status)
	}

	v := Build(pg, "yose")
	if v.Status != StatusOK || v.Park == nil {
		t.Fatalf("status = %v", v.Status)
	}
	if v.OfficialURL != "https://www.nps.gov/yose/index.htm" {
		t.Errorf("official url = %q", v.OfficialURL)
	}
}

func TestHeaderImage(t *testing.T) {
	base := park.Park{ID: "zion", UnitCode: "ZION"}
	withHero := base
	withHero.HeroImage = &park.HeroImage{URL: "hero.jpg", Credit: "NPS"}
	legacyHero := base
	legacyHero.HeroImageURL = "legacy.jpg"

	older := func(photos ...visit.Photo) visit.Entry {
		return visit.Entry{VisitDate: "2020-01-01", Photos: photos}
	}
	newer := func(photos ...visit.Photo) visit.Entry {
		return visit.Entry{VisitDate: "2023-01-01", Photos: photos}
	}

	tests := []struct {
		name    string
		park    park.Park
		entries []visit.Entry
		want    string
	}{
		{"flag on latest", base, []visit.Entry{older(visit.Photo{Image: "o.jpg", Header: true}), newer(visit.Photo{Image: "a.jpg"}, visit.Photo{Image: "b.jpg", Header: true})}, "b.jpg"},
		{"sole photo on latest", base, []visit.Entry{older(visit.Photo{Image: "o.jpg", Header: true}), newer(visit.Photo{Image: "only.jpg"})}, "only.jpg"},
		{"flag on older visit", base, []visit.Entry{older(visit.Photo{Image: "o1.jpg"}, visit.Photo{Image: "o2.jpg", Header: true}), newer(visit.Photo{Image: "a.jpg"}, visit.Photo{Image: "b.jpg"})}, "o2.jpg"},
		{"sole photo overall", base, []visit.Entry{older(visit.Photo{Image: "o.jpg"}), newer()}, "o.jpg"},
		{"ambiguous falls to hero", withHero, []visit.Entry{newer(visit.Photo{Image: "a.jpg"}, visit.Photo{Image: "b.jpg"})}, "hero.jpg"},
		{"legacy hero url", legacyHero, nil, "legacy.jpg"},
		{"ambiguous without hero", base, []visit.Entry{newer(visit.Photo{Image: "a.jpg"}, visit.Photo{Image: "b.jpg"})}, ""},
		{"nothing", base, nil, ""},
		{"imageless photo ignored", base, []visit.Entry{newer(visit.Photo{Caption: "blank"}, visit.Photo{Image: "real.jpg"})}, "real.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := HeaderImage(enriched(t, tt.park, tt.entries...))
			got := ""
			if img != nil {
				got = img.URL
			}
			if got != tt.want {
				t.Errorf("header = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeaturedStamp(t *testing.T) {
	tests := []struct {
		name   string
		stamps []visit.Stamp
		want   string
	}{
		{"none", nil, ""},
		{"flagged", []visit.Stamp{{Image: "a", Date: "2019-01-01"}, {Image: "b", Featured: true}}, "b"},
		{"earliest dated", []visit.Stamp{{Image: "a"}, {Image: "b", Date: "2022-01-01"}, {Image: "c", Date: "2020-06-01"}}, "c"},
		{"first when undated", []visit.Stamp{{Image: "a"}, {Image: "b"}}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FeaturedStamp(tt.stamps)
			got := ""
			if s != nil {
				got = s.Image
			}
			if got != tt.want {
				t.Errorf("featured = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewestFirst(t *testing.T) {
	entries := []visit.Entry{
		{VisitDate: "", Notes: "undated-1"},
		{VisitDate: "2020-01-01"},
		{VisitDate: "2023-01-01"},
		{VisitDate: "bad", Notes: "undated-2"},
	}
	got := NewestFirst(entries)
	want := []string{"2023-01-01", "2020-01-01", "", "bad"}
	for i := range want {
		if got[i].VisitDate != want[i] {
			t.Fatalf("order = %+v", got)
		}
	}
	if entries[0].Notes != "undated-1" {
		t.Error("input reordered")
	}
}
