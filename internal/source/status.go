package source

import "strings"

// Normalized status strings shared by the federal and state adapters.
const (
	StatusSigned      = "Signed Into Law"
	StatusPassedBoth  = "Passed Both Chambers"
	StatusPassedOne   = "Passed One Chamber"
	StatusInCommittee = "In Committee"
	StatusIntroduced  = "Introduced"
	StatusInProgress  = "In Progress"
)

// statusRule classifies a lowercased latest-action string. Rules are
// evaluated in order and the first match wins; order matters because
// "passed" and "committee" can co-occur in one action text.
type statusRule struct {
	match  func(s string) bool
	status string
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var statusRules = []statusRule{
	{
		match:  func(s string) bool { return containsAny(s, "signed", "became law", "became public law") },
		status: StatusSigned,
	},
	{
		match: func(s string) bool {
			return strings.Contains(s, "passed") &&
				containsAny(s, "house") && containsAny(s, "senate")
		},
		status: StatusPassedBoth,
	},
	{
		match: func(s string) bool {
			return strings.Contains(s, "passed") && containsAny(s, "house", "senate", "chamber", "assembly")
		},
		status: StatusPassedOne,
	},
	{
		match:  func(s string) bool { return strings.Contains(s, "committee") },
		status: StatusInCommittee,
	},
	{
		match:  func(s string) bool { return strings.Contains(s, "introduced") },
		status: StatusIntroduced,
	},
}

// NormalizeStatus classifies a free-text latest-action string into one
// of the normalized statuses.
func NormalizeStatus(latestAction string) string {
	s := strings.ToLower(latestAction)
	for _, r := range statusRules {
		if r.match(s) {
			return r.status
		}
	}
	return StatusInProgress
}
