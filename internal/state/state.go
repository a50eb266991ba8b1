// Package state resolves US state and territory postal codes to names and
// parses the free-form state filter typed into the search form.
package state

import "strings"

var names = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
	"DC": "District of Columbia",
	"PR": "Puerto Rico",
	"VI": "U.S. Virgin Islands",
	"GU": "Guam",
	"AS": "American Samoa",
	"MP": "Northern Mariana Islands",
}

// Name returns the full name for a postal code, or "" if the code is unknown.
func Name(code string) string {
	return names[code]
}

// DisplayName returns the full name for a code, falling back to the code itself.
func DisplayName(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}

// IsCode reports whether code is a known postal code. Matching is exact.
func IsCode(code string) bool {
	_, ok := names[code]
	return ok
}

// Normalize lowercases s and strips everything except ASCII letters and digits.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Input is the parsed form of a state filter. At most one field is set.
type Input struct {
	Code      string `json:"code,omitempty"`
	NameQuery string `json:"name_query,omitempty"`
}

// IsZero reports whether the input selects nothing.
func (in Input) IsZero() bool {
	return in.Code == "" && in.NameQuery == ""
}

// ParseInput accepts "CA", "CA — California" or a fragment of a state name.
//
// A compound "CODE — Name" string resolves to its code prefix, a bare two
// letter code resolves to itself, and anything else becomes a normalized name
// query. Input that normalizes to two characters or fewer and is not a known
// code is returned as an unmatched Code rather than a name query.
func ParseInput(text string) Input {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Input{}
	}

	if i := strings.IndexAny(raw, "-—"); i >= 0 {
		code := strings.ToUpper(strings.TrimSpace(raw[:i]))
		if IsCode(code) {
			return Input{Code: code}
		}
	}

	candidate := strings.ToUpper(lettersOnly(raw))
	if len(candidate) == 2 && IsCode(candidate) {
		return Input{Code: candidate}
	}

	query := Normalize(raw)
	if len(query) <= 2 {
		return Input{Code: strings.ToUpper(query)}
	}

	return Input{NameQuery: query}
}

// Matches reports whether any of codes satisfies the parsed input.
// A zero Input matches everything.
func (in Input) Matches(codes []string) bool {
	if in.IsZero() {
		return true
	}
	for _, code := range codes {
		if in.Code != "" {
			if strings.EqualFold(code, in.Code) {
				return true
			}
			continue
		}
		if strings.Contains(Normalize(Name(code)), in.NameQuery) {
			return true
		}
	}
	return false
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
