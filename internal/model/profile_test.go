package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncomeBracket(t *testing.T) {
	tests := []struct {
		name    string
		monthly *float64
		want    string
	}{
		{"unknown", nil, ""},
		{"under 30k", Ptr(2000.0), BracketUnder30k},
		{"under 50k", Ptr(4000.0), BracketUnder50k},
		{"under 80k", Ptr(6000.0), BracketUnder80k},
		{"under 120k", Ptr(9000.0), BracketUnder120k},
		{"120k plus", Ptr(10_000.0), Bracket120kPlus},
		{"boundary 30k exactly is next bracket", Ptr(2500.0), BracketUnder50k},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{MonthlyIncome: tt.monthly}
			assert.Equal(t, tt.want, p.IncomeBracket())
		})
	}
}

func TestDemographicTags(t *testing.T) {
	p := &UserProfile{
		MonthlyIncome: Ptr(4000.0),
		Age:           Ptr(68),
		Dependents:    Ptr(2),
		IsVeteran:     Ptr(true),
		Homeowner:     Ptr(false),
		UsesTransit:   Ptr(true),
	}
	tags := p.DemographicTags()
	assert.Contains(t, tags, TagSenior)
	assert.Contains(t, tags, BracketUnder50k)
	assert.Contains(t, tags, TagVeteran)
	assert.Contains(t, tags, TagParent)
	assert.Contains(t, tags, TagRenter)
	assert.Contains(t, tags, TagTransitRider)
	assert.NotContains(t, tags, TagHomeowner)
}

func TestDemographicTagsNilProfile(t *testing.T) {
	var p *UserProfile
	assert.Nil(t, p.DemographicTags())
	assert.Equal(t, "", p.IncomeBracket())
	assert.Equal(t, 0.0, p.AnnualIncome())
}

func TestImpactAnnotationApply(t *testing.T) {
	rec := ContentRecord{ID: "x"}
	assert.False(t, rec.HasImpact())

	ann := ImpactAnnotation{
		PersonalImpact:  "Saves you money.",
		FinancialEffect: 420,
		Timeline:        "2026",
		Confidence:      130, // clamped
		IsBenefit:       Ptr(true),
	}
	ann.Apply(&rec)

	assert.True(t, rec.HasImpact())
	assert.Equal(t, "Saves you money.", *rec.PersonalImpact)
	assert.Equal(t, 420.0, *rec.FinancialEffect)
	assert.Equal(t, 100, rec.Confidence)
	assert.True(t, *rec.IsBenefit)
}
