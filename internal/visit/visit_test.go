package visit

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
		want   string
	}{
		{"2023-01-10", true, "2023-01-10"},
		{" 2021-05-01 ", true, "2021-05-01"},
		{"2022-07-04T10:30:00Z", true, "2022-07-04"},
		{"2022-07-04T10:30", true, "2022-07-04"},
		{"07/04/2022", true, "2022-07-04"},
		{"July 4, 2022", true, "2022-07-04"},
		{"Jul 4, 2022", true, "2022-07-04"},
		{"2021-05", true, "2021-05-01"},
		{"2021", true, "2021-01-01"},
		{"2021-13", false, ""},
		{"", false, ""},
		{"someday", false, ""},
		{"2022-13-40", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := NormalizeKey("  YoSe \n"); got != "yose" {
		t.Errorf("NormalizeKey = %q, want yose", got)
	}
}

func TestRecordMultiShape(t *testing.T) {
	raw := `{"unit_code":"ZION","visits":[
		{"visit_date":"2021-05-01","rating":"4","entry":"first trip","photos":[{"image":"a.jpg","header":"true"}]},
		{"visit_date":"2023-01-10","rating":5,"notes":"second","stamps":[{"image":"s.jpg","featured":true}],"blog_url":"https://blog.example/zion"}
	],"visit_date":"2019-01-01"}`

	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Shape != ShapeMulti {
		t.Fatalf("shape = %v, want multi", r.Shape)
	}
	if r.Key != "ZION" {
		t.Errorf("key = %q", r.Key)
	}
	if len(r.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(r.Entries))
	}
	first := r.Entries[0]
	if first.Rating != 4 {
		t.Errorf("rating = %v, want 4 from string", first.Rating)
	}
	if first.Notes != "first trip" {
		t.Errorf("notes = %q, want entry alias", first.Notes)
	}
	if len(first.Photos) != 1 || !first.Photos[0].Header {
		t.Errorf("photos = %+v", first.Photos)
	}
	if !r.Entries[1].Stamps[0].Featured {
		t.Error("expected featured stamp")
	}
	if r.Entries[1].BlogURL != "https://blog.example/zion" {
		t.Errorf("blog_url = %q", r.Entries[1].BlogURL)
	}
}

func TestRecordLegacyShapeWithEmptyVisits(t *testing.T) {
	raw := `{"id":"acad","visits":[],"visit_date":"2020-08-01","rating":3,"review":"foggy",
		"highlights":["Cadillac"],"facts":[{"label":"Acres","value":49075}],"photos":[{"image":"p.jpg"}]}`

	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Shape != ShapeLegacy {
		t.Fatalf("shape = %v, want legacy", r.Shape)
	}
	if r.Key != "acad" {
		t.Errorf("key = %q, want id fallback", r.Key)
	}
	if len(r.Entries) != 1 {
		t.Fatalf("got %d entries, want exactly 1", len(r.Entries))
	}
	e := r.Entries[0]
	if e.VisitDate != "2020-08-01" || e.Rating != 3 || e.Review != "foggy" {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Facts) != 1 || e.Facts[0].Value != "49075" {
		t.Errorf("facts = %+v", e.Facts)
	}
}

func TestRecordSeededBlankHasNoEntries(t *testing.T) {
	raw := `{"unit_code":"GRCA","park_name":"Grand Canyon","visited":false,"visit_date":"","visit_note":"",
		"rating":null,"review":"","notes":"","highlights":[],"facts":[],"stamps":[],"photos":[],"nps_url":""}`

	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Shape != ShapeNone {
		t.Errorf("shape = %v, want none", r.Shape)
	}
	if len(r.Entries) != 0 {
		t.Errorf("got %d entries, want 0", len(r.Entries))
	}
}

func TestRecordOverrides(t *testing.T) {
	raw := `{"park_id":"olym","nps_url":"https://nps.example/olym","hero_image":{"url":"h.jpg"}}`

	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Key != "olym" {
		t.Errorf("key = %q, want park_id fallback", r.Key)
	}
	if r.NPSURL != "https://nps.example/olym" || r.HeroImage == nil {
		t.Errorf("overrides = %q %+v", r.NPSURL, r.HeroImage)
	}
}

func TestRecordNonFiniteRating(t *testing.T) {
	for _, raw := range []string{`"NaN"`, `"inf"`, `"-Infinity"`} {
		t.Run(raw, func(t *testing.T) {
			var r Record
			if err := json.Unmarshal([]byte(`{"unit_code": "ZION", "rating": `+raw+`}`), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(r.Entries) != 0 {
				t.Errorf("entries = %+v, want none for a rating that is not a number", r.Entries)
			}

			var m Record
			if err := json.Unmarshal([]byte(`{"unit_code": "ZION", "visits": [{"visit_date": "2023-03-01", "rating": `+raw+`}]}`), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(m.Entries) != 1 || m.Entries[0].Rating != 0 {
				t.Errorf("entries = %+v, want one unrated entry", m.Entries)
			}
		})
	}
}

func TestHasLegacyVisit(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{"empty", Entry{}, false},
		{"date", Entry{VisitDate: "2020-01-01"}, true},
		{"note", Entry{VisitNote: "x"}, true},
		{"rating", Entry{Rating: 2}, true},
		{"review", Entry{Review: "x"}, true},
		{"notes", Entry{Notes: "x"}, true},
		{"highlights", Entry{Highlights: []string{"x"}}, true},
		{"facts", Entry{Facts: []Fact{{Label: "a"}}}, true},
		{"stamps", Entry{Stamps: []Stamp{{Image: "s"}}}, true},
		{"photos", Entry{Photos: []Photo{{Image: "p"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLegacyVisit(&tt.entry); got != tt.want {
				t.Errorf("HasLegacyVisit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeLog(t *testing.T) {
	raw := `{"visits":[{"unit_code":"A","visit_date":"2020-01-01"},42,{"unit_code":"B"}]}`

	log, err := DecodeLog([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(log.Visits) != 2 {
		t.Fatalf("got %d records, want 2", len(log.Visits))
	}
	if log.Visits[0].Shape != ShapeLegacy || log.Visits[1].Shape != ShapeNone {
		t.Errorf("shapes = %v, %v", log.Visits[0].Shape, log.Visits[1].Shape)
	}
}

func TestLogEncodeIsMultiShape(t *testing.T) {
	log := &Log{Visits: []Record{{Key: "A", Entries: []Entry{{VisitDate: "2020-01-01", Rating: 4.5}}}}}

	data, err := log.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"unit_code": "A"`) || !strings.Contains(out, `"rating": 4.5`) {
		t.Errorf("encoded = %s", out)
	}

	back, err := DecodeLog(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Visits[0].Shape != ShapeMulti {
		t.Errorf("shape = %v, want multi after encode", back.Visits[0].Shape)
	}
}

func TestEntryText(t *testing.T) {
	e := Entry{Review: "r", Highlights: []string{"h"}, Facts: []Fact{{Label: "l", Value: "v"}},
		Photos: []Photo{{Caption: "pc"}}, Stamps: []Stamp{{Caption: "sc"}}}
	joined := strings.Join(e.Text(), " ")
	for _, want := range []string{"r", "h", "l", "v", "pc", "sc"} {
		if !strings.Contains(joined, want) {
			t.Errorf("text %q missing %q", joined, want)
		}
	}
}

func TestRatingString(t *testing.T) {
	if Rating(4).String() != "4" || Rating(4.5).String() != "4.5" {
		t.Errorf("got %s and %s", Rating(4), Rating(4.5))
	}
}
