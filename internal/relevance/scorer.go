// Package relevance scores records against a user profile. Each factor
// contributes only when the record or profile gives it signal; the final
// score is the weighted average over the factors that applied.
package relevance

import (
	"strings"

	"github.com/groundwork-civic/civicfeed/internal/location"
	"github.com/groundwork-civic/civicfeed/internal/model"
)

const (
	// NoProfileScore is the flat score every record gets when nothing is
	// known about the user.
	NoProfileScore = 1.0
	// MinScore is the floor under any scored record.
	MinScore = 0.1
)

// factor evaluates one scoring dimension. applied=false means the
// dimension had no signal and its weight is excluded from the average.
type factor func(r *model.ContentRecord, p *model.UserProfile, loc location.Parsed) (score float64, applied bool)

// Scorer computes relevance scores with a fixed weight set.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer. Invalid weights fall back to the defaults.
func NewScorer(w Weights) *Scorer {
	if err := w.Validate(); err != nil {
		w = DefaultWeights()
	}
	return &Scorer{weights: w}
}

// Score computes the relevance of a single record. With a nil profile
// every record scores NoProfileScore.
func (s *Scorer) Score(r *model.ContentRecord, p *model.UserProfile, loc location.Parsed) float64 {
	if p == nil {
		return NoProfileScore
	}

	type weighted struct {
		weight float64
		fn     factor
	}
	factors := []weighted{
		{s.weights.Location, locationFactor},
		{s.weights.Demographics, demographicsFactor},
		{s.weights.Interests, interestsFactor},
		{s.weights.Income, incomeFactor},
		{s.weights.Veteran, veteranFactor},
		{s.weights.Category, categoryFactor},
	}

	var sum, totalWeight float64
	for _, f := range factors {
		score, applied := f.fn(r, p, loc)
		if !applied {
			continue
		}
		sum += score * f.weight
		totalWeight += f.weight
	}

	if totalWeight == 0 {
		return NoProfileScore
	}
	score := sum / totalWeight
	if score < MinScore {
		return MinScore
	}
	return score
}

// ScoreAll scores every record in place, filling RelevanceScore and
// RelevanceExplanation.
func (s *Scorer) ScoreAll(records []model.ContentRecord, p *model.UserProfile, loc location.Parsed) {
	for i := range records {
		r := &records[i]
		r.RelevanceScore = s.Score(r, p, loc)
		r.RelevanceExplanation = explain(r, p, loc, r.RelevanceScore)
	}
}

// locationFactor scores localized items by how close they are to the
// user. Federal items get a neutral baseline for everyone; items
// localized somewhere the user is not contribute nothing.
func locationFactor(r *model.ContentRecord, _ *model.UserProfile, loc location.Parsed) (float64, bool) {
	if r.Scope == model.ScopeFederal {
		return 50, true
	}
	if r.Location == nil || !loc.IsValid {
		return 0, false
	}
	switch {
	case r.Location.City != "" && strings.EqualFold(r.Location.City, loc.City) &&
		strings.EqualFold(r.Location.StateCode, loc.StateCode):
		return 100, true
	case r.Location.County != "" && loc.County != "" &&
		strings.EqualFold(r.Location.County, loc.County):
		return 85, true
	case strings.EqualFold(r.Location.StateCode, loc.StateCode):
		return 70, true
	default:
		return 0, false
	}
}

// demographicsFactor scores the overlap between the record's demographic
// tags and the profile's inferred tag set.
func demographicsFactor(r *model.ContentRecord, p *model.UserProfile, _ location.Parsed) (float64, bool) {
	if len(r.RelevantDemographics) == 0 {
		return 0, false
	}
	return overlapScore(r.RelevantDemographics, p.DemographicTags()), true
}

// interestsFactor scores the overlap between the record's interest tags
// and the profile's stated interests.
func interestsFactor(r *model.ContentRecord, p *model.UserProfile, _ location.Parsed) (float64, bool) {
	if len(r.RelevantInterests) == 0 || len(p.Interests) == 0 {
		return 0, false
	}
	return overlapScore(r.RelevantInterests, p.Interests), true
}

// incomeFactor applies only when the user's bracket is among the
// record's targeted income brackets.
func incomeFactor(r *model.ContentRecord, p *model.UserProfile, _ location.Parsed) (float64, bool) {
	bracket := p.IncomeBracket()
	if len(r.IncomeRelevance) == 0 || bracket == "" {
		return 0, false
	}
	for _, b := range r.IncomeRelevance {
		if strings.EqualFold(b, bracket) {
			return 80, true
		}
	}
	return 0, false
}

// veteranFactor boosts veterans-affairs content for veterans and their
// families. For non-veterans it only applies to the VeteransAffairs
// category, where it dampens the score.
func veteranFactor(r *model.ContentRecord, p *model.UserProfile, _ location.Parsed) (float64, bool) {
	isVet := p.HasTag(model.TagVeteran) || p.HasTag(model.TagMilitaryFamily)

	if r.Category == model.CategoryVeteransAffairs {
		if isVet {
			return 100, true
		}
		return 20, true
	}
	if isVet && hasTag(r.RelevantDemographics, model.TagVeteran) {
		return 90, true
	}
	return 0, false
}

// categoryFactor rewards records in the user's ranked priority
// categories, decaying with rank.
func categoryFactor(r *model.ContentRecord, p *model.UserProfile, _ location.Parsed) (float64, bool) {
	if len(p.PriorityCategories) == 0 {
		return 0, false
	}
	for rank, c := range p.PriorityCategories {
		if c == r.Category {
			score := 100 - float64(rank)*15
			if score < 40 {
				score = 40
			}
			return score, true
		}
	}
	return 0, false
}

// overlapScore returns the fraction of record tags present in the
// profile set, scaled to 0-100. Matching is case-insensitive.
func overlapScore(recordTags, profileTags []string) float64 {
	if len(recordTags) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(profileTags))
	for _, t := range profileTags {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	matched := 0
	for _, t := range recordTags {
		if _, ok := set[strings.ToLower(strings.TrimSpace(t))]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(recordTags)) * 100
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
