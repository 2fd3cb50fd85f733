package relevance

import (
	"strings"

	"github.com/groundwork-civic/civicfeed/internal/location"
	"github.com/groundwork-civic/civicfeed/internal/model"
)

// explain builds a short human-readable reason list for a scored record.
// At most three reasons, strongest first. Returns nil when the profile
// is absent or the score never rose above the no-signal baseline.
func explain(r *model.ContentRecord, p *model.UserProfile, loc location.Parsed, score float64) *string {
	if p == nil || score <= NoProfileScore {
		return nil
	}

	var reasons []string

	if r.Scope != model.ScopeFederal && r.Location != nil && loc.IsValid {
		switch {
		case r.Location.City != "" && strings.EqualFold(r.Location.City, loc.City):
			reasons = append(reasons, "applies to "+loc.City)
		case strings.EqualFold(r.Location.StateCode, loc.StateCode):
			reasons = append(reasons, "applies to "+loc.State)
		}
	}

	isVet := p.HasTag(model.TagVeteran) || p.HasTag(model.TagMilitaryFamily)
	if isVet && (r.Category == model.CategoryVeteransAffairs || hasTag(r.RelevantDemographics, model.TagVeteran)) {
		reasons = append(reasons, "relevant to veterans")
	}

	if bracket := p.IncomeBracket(); bracket != "" && hasTag(r.IncomeRelevance, bracket) {
		reasons = append(reasons, "targets your income range")
	}

	if interest := firstMatch(r.RelevantInterests, p.Interests); interest != "" {
		reasons = append(reasons, "matches your interest in "+interest)
	}

	for rank, c := range p.PriorityCategories {
		if c == r.Category {
			if rank == 0 {
				reasons = append(reasons, "your top priority category")
			} else {
				reasons = append(reasons, "one of your priority categories")
			}
			break
		}
	}

	if len(reasons) == 0 {
		return nil
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return model.Ptr(strings.Join(reasons, ", "))
}

// firstMatch returns the first record interest present in the profile
// interests, lowercased for display.
func firstMatch(recordTags, profileTags []string) string {
	set := make(map[string]struct{}, len(profileTags))
	for _, t := range profileTags {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	for _, t := range recordTags {
		key := strings.ToLower(strings.TrimSpace(t))
		if _, ok := set[key]; ok {
			return key
		}
	}
	return ""
}
