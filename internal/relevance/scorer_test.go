package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-civic/civicfeed/internal/location"
	"github.com/groundwork-civic/civicfeed/internal/model"
)

func sacramento() location.Parsed {
	return location.Parsed{
		City:      "Sacramento",
		State:     "California",
		StateCode: "CA",
		IsValid:   true,
	}
}

func TestScoreNilProfile(t *testing.T) {
	s := NewScorer(DefaultWeights())
	r := model.ContentRecord{ID: "fed-1", Scope: model.ScopeFederal}

	assert.Equal(t, NoProfileScore, s.Score(&r, nil, sacramento()))
}

func TestScoreFederalBaseline(t *testing.T) {
	s := NewScorer(DefaultWeights())
	p := &model.UserProfile{Location: "Sacramento, CA"}
	r := model.ContentRecord{ID: "fed-1", Scope: model.ScopeFederal, Category: model.CategoryEconomic}

	// Only the location factor applies; the weighted average collapses
	// to the factor value itself.
	assert.InDelta(t, 50.0, s.Score(&r, p, sacramento()), 0.001)
}

func TestScoreLocationProximity(t *testing.T) {
	s := NewScorer(DefaultWeights())
	p := &model.UserProfile{Location: "Sacramento, CA"}

	city := model.ContentRecord{
		Scope:    model.ScopeCity,
		Location: &model.Location{City: "Sacramento", State: "California", StateCode: "CA"},
	}
	state := model.ContentRecord{
		Scope:    model.ScopeState,
		Location: &model.Location{State: "California", StateCode: "CA"},
	}
	elsewhere := model.ContentRecord{
		Scope:    model.ScopeCity,
		Location: &model.Location{City: "Austin", State: "Texas", StateCode: "TX"},
	}

	loc := sacramento()
	cityScore := s.Score(&city, p, loc)
	stateScore := s.Score(&state, p, loc)
	elsewhereScore := s.Score(&elsewhere, p, loc)

	assert.InDelta(t, 100.0, cityScore, 0.001)
	assert.InDelta(t, 70.0, stateScore, 0.001)
	assert.Equal(t, NoProfileScore, elsewhereScore, "a record localized elsewhere leaves no applied factors")
	assert.Greater(t, cityScore, stateScore)
	assert.Greater(t, stateScore, elsewhereScore)
}

func TestScoreNoMatchFactorsNotApplied(t *testing.T) {
	s := NewScorer(DefaultWeights())
	p := &model.UserProfile{
		Location:  "Sacramento, CA",
		Interests: []string{"housing"},
	}
	r := model.ContentRecord{
		Scope:             model.ScopeCity,
		Location:          &model.Location{City: "Austin", State: "Texas", StateCode: "TX"},
		RelevantInterests: []string{"housing"},
	}

	// The non-matching location contributes neither score nor weight, so
	// the full interest overlap is the only applied factor.
	assert.InDelta(t, 100.0, s.Score(&r, p, sacramento()), 0.001)
}

func TestScoreNonFederalNilLocationNotApplied(t *testing.T) {
	s := NewScorer(DefaultWeights())
	p := &model.UserProfile{Interests: []string{"education"}}
	r := model.ContentRecord{
		Scope:             model.ScopeState,
		RelevantInterests: []string{"education"},
	}

	assert.InDelta(t, 100.0, s.Score(&r, p, sacramento()), 0.001,
		"the neutral location baseline only covers federal scope")
}

func TestScoreVeteranBoost(t *testing.T) {
	s := NewScorer(DefaultWeights())
	vet := &model.UserProfile{IsVeteran: model.Ptr(true)}
	civilian := &model.UserProfile{IsVeteran: model.Ptr(false)}

	r := model.ContentRecord{
		Scope:                model.ScopeFederal,
		Category:             model.CategoryVeteransAffairs,
		RelevantDemographics: []string{model.TagVeteran},
	}

	loc := sacramento()
	vetScore := s.Score(&r, vet, loc)
	civScore := s.Score(&r, civilian, loc)

	assert.Greater(t, vetScore, civScore)
	// Veteran: location 50, demographics 100 (full overlap), veteran 100.
	want := (50*0.25 + 100*0.20 + 100*0.10) / (0.25 + 0.20 + 0.10)
	assert.InDelta(t, want, vetScore, 0.001)
}

func TestScoreIncomeBracket(t *testing.T) {
	s := NewScorer(DefaultWeights())
	lowIncome := &model.UserProfile{MonthlyIncome: model.Ptr(2000.0)} // 24k/yr
	highIncome := &model.UserProfile{MonthlyIncome: model.Ptr(15000.0)}

	r := model.ContentRecord{
		Scope:           model.ScopeFederal,
		IncomeRelevance: []string{model.BracketUnder30k, model.BracketUnder50k},
	}

	loc := sacramento()
	assert.Greater(t, s.Score(&r, lowIncome, loc), s.Score(&r, highIncome, loc))

	// A bracket mismatch drops the factor entirely, leaving only the
	// federal location baseline.
	assert.InDelta(t, 50.0, s.Score(&r, highIncome, loc), 0.001)
}

func TestScorePriorityCategoryRank(t *testing.T) {
	s := NewScorer(DefaultWeights())
	p := &model.UserProfile{
		PriorityCategories: []model.Category{model.CategoryHousing, model.CategoryEducation},
	}

	first := model.ContentRecord{Scope: model.ScopeFederal, Category: model.CategoryHousing}
	second := model.ContentRecord{Scope: model.ScopeFederal, Category: model.CategoryEducation}
	absent := model.ContentRecord{Scope: model.ScopeFederal, Category: model.CategoryEnvironment}

	loc := sacramento()
	firstScore := s.Score(&first, p, loc)
	secondScore := s.Score(&second, p, loc)
	absentScore := s.Score(&absent, p, loc)

	assert.Greater(t, firstScore, secondScore)
	assert.Greater(t, secondScore, absentScore)
	assert.InDelta(t, 50.0, absentScore, 0.001, "unlisted category leaves only the location factor")
}

func TestScoreFloor(t *testing.T) {
	s := NewScorer(Weights{Demographics: 1.0})
	p := &model.UserProfile{Age: model.Ptr(40)}
	r := model.ContentRecord{
		Scope:                model.ScopeFederal,
		RelevantDemographics: []string{model.TagParent, model.TagSenior},
	}

	assert.Equal(t, MinScore, s.Score(&r, p, sacramento()))
}

func TestScoreNoApplicableFactors(t *testing.T) {
	s := NewScorer(Weights{Interests: 1.0})
	p := &model.UserProfile{}
	r := model.ContentRecord{Scope: model.ScopeFederal}

	assert.Equal(t, NoProfileScore, s.Score(&r, p, sacramento()))
}

func TestScoreAll(t *testing.T) {
	s := NewScorer(DefaultWeights())
	p := &model.UserProfile{
		IsVeteran: model.Ptr(true),
		Interests: []string{"veterans", "healthcare"},
	}
	records := []model.ContentRecord{
		{
			ID:                   "fed-va",
			Scope:                model.ScopeFederal,
			Category:             model.CategoryVeteransAffairs,
			RelevantDemographics: []string{model.TagVeteran},
			RelevantInterests:    []string{"veterans"},
		},
		{ID: "fed-other", Scope: model.ScopeFederal, Category: model.CategoryOther},
	}

	s.ScoreAll(records, p, sacramento())

	assert.Greater(t, records[0].RelevanceScore, records[1].RelevanceScore)
	require.NotNil(t, records[0].RelevanceExplanation)
	assert.Contains(t, *records[0].RelevanceExplanation, "veteran")
	assert.Nil(t, records[1].RelevanceExplanation, "nothing to explain for a plain record")
}

func TestExplainNilAtBaselineScore(t *testing.T) {
	p := &model.UserProfile{IsVeteran: model.Ptr(true)}
	r := model.ContentRecord{Scope: model.ScopeFederal, Category: model.CategoryVeteransAffairs}

	// The veteran reason would fire, but a score at the no-signal
	// baseline means there is nothing worth explaining.
	assert.Nil(t, explain(&r, p, sacramento(), NoProfileScore))
	assert.NotNil(t, explain(&r, p, sacramento(), 70.0))
}

func TestNewScorerRejectsBadWeights(t *testing.T) {
	s := NewScorer(Weights{Location: 0.9}) // sums to 0.9
	assert.Equal(t, DefaultWeights(), s.weights, "invalid weights fall back to defaults")
}
