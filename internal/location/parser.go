// Package location parses free-text user locations into structured
// jurisdiction components. It is a heuristic parser, not a geocoder:
// the first full state name found by an ordered table scan wins, so
// inputs like "Washington, DC" resolve to the state name before the
// city. That limitation is deliberate and covered by tests.
package location

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parsed is the best-effort structured form of a free-text location.
type Parsed struct {
	City      string `json:"city,omitempty"`
	County    string `json:"county,omitempty"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
	IsValid   bool   `json:"is_valid"`
}

type stateEntry struct {
	name string // lowercase full name
	code string
}

// states is scanned in order; the first substring match wins.
var states = []stateEntry{
	{"alabama", "AL"}, {"alaska", "AK"}, {"arizona", "AZ"}, {"arkansas", "AR"},
	{"california", "CA"}, {"colorado", "CO"}, {"connecticut", "CT"}, {"delaware", "DE"},
	{"district of columbia", "DC"}, {"florida", "FL"}, {"georgia", "GA"}, {"hawaii", "HI"},
	{"idaho", "ID"}, {"illinois", "IL"}, {"indiana", "IN"}, {"iowa", "IA"},
	{"kansas", "KS"}, {"kentucky", "KY"}, {"louisiana", "LA"}, {"maine", "ME"},
	{"maryland", "MD"}, {"massachusetts", "MA"}, {"michigan", "MI"}, {"minnesota", "MN"},
	{"mississippi", "MS"}, {"missouri", "MO"}, {"montana", "MT"}, {"nebraska", "NE"},
	{"nevada", "NV"}, {"new hampshire", "NH"}, {"new jersey", "NJ"}, {"new mexico", "NM"},
	{"new york", "NY"}, {"north carolina", "NC"}, {"north dakota", "ND"}, {"ohio", "OH"},
	{"oklahoma", "OK"}, {"oregon", "OR"}, {"pennsylvania", "PA"}, {"rhode island", "RI"},
	{"south carolina", "SC"}, {"south dakota", "SD"}, {"tennessee", "TN"}, {"texas", "TX"},
	{"utah", "UT"}, {"vermont", "VT"}, {"virginia", "VA"}, {"washington", "WA"},
	{"west virginia", "WV"}, {"wisconsin", "WI"}, {"wyoming", "WY"},
}

var codeToName = func() map[string]string {
	m := make(map[string]string, len(states))
	for _, s := range states {
		m[s.code] = s.name
	}
	return m
}()

var (
	// Word-boundary alternation over all state codes, built once.
	abbrRe = func() *regexp.Regexp {
		codes := make([]string, len(states))
		for i, s := range states {
			codes[i] = s.code
		}
		return regexp.MustCompile(`(?i)\b(` + strings.Join(codes, "|") + `)\b`)
	}()

	zipRe = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\b`)
)

var titleCaser = cases.Title(language.AmericanEnglish)

// StateName returns the full state name for a 2-letter code, or "".
func StateName(code string) string {
	name, ok := codeToName[strings.ToUpper(code)]
	if !ok {
		return ""
	}
	return titleCaser.String(name)
}

// Parse converts a free-text location ("City, ST", "City, State Name",
// a full address, or "") into structured components. It never fails;
// unusable input yields a zero Parsed with IsValid=false.
func Parse(raw string) Parsed {
	var p Parsed

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return p
	}

	lower := strings.ToLower(raw)

	// Zip extraction is independent of city/state.
	if m := zipRe.FindStringSubmatch(raw); m != nil {
		p.ZipCode = m[1]
	}

	// Full state names first, ordered table scan.
	matchIdx := -1
	for _, s := range states {
		if idx := strings.Index(lower, s.name); idx >= 0 {
			p.State = titleCaser.String(s.name)
			p.StateCode = s.code
			matchIdx = idx
			break
		}
	}

	// Then 2-letter codes at a word boundary.
	if p.StateCode == "" {
		if loc := abbrRe.FindStringIndex(raw); loc != nil {
			code := strings.ToUpper(raw[loc[0]:loc[1]])
			p.StateCode = code
			p.State = StateName(code)
			matchIdx = loc[0]
		}
	}

	// City is whatever precedes the state token, or the text before the
	// first comma when no state was found.
	var cityPart string
	if matchIdx >= 0 {
		cityPart = raw[:matchIdx]
	} else if idx := strings.Index(raw, ","); idx >= 0 {
		cityPart = raw[:idx]
	}
	cityPart = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(cityPart), ","))
	if cityPart != "" {
		p.City = titleCaser.String(strings.ToLower(cityPart))
	}

	p.IsValid = p.StateCode != ""
	return p
}
