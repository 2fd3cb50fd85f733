package source

import (
	"strings"

	"github.com/groundwork-civic/civicfeed/internal/model"
)

// categoryRule maps subject/policy-area keywords to a category. Rules
// are evaluated in order, first match wins. Keywords are substrings of
// the lowercased subject text.
type categoryRule struct {
	keywords []string
	category model.Category
}

var categoryRules = []categoryRule{
	{[]string{"health", "medicare", "medicaid"}, model.CategoryHealthcare},
	{[]string{"housing", "urban"}, model.CategoryHousing},
	{[]string{"veteran", "military", "armed forces"}, model.CategoryVeteransAffairs},
	{[]string{"tax", "economic", "finance", "commerce"}, model.CategoryEconomic},
	{[]string{"environment", "climate", "energy", "water"}, model.CategoryEnvironment},
	{[]string{"transport", "infrastructure", "highway"}, model.CategoryTransportation},
	{[]string{"social", "civil rights", "immigration"}, model.CategorySocialIssues},
	{[]string{"education", "school", "student"}, model.CategoryEducation},
	{[]string{"crime", "police", "fire", "emergency", "safety"}, model.CategoryPublicSafety},
}

// ClassifyCategory maps a free-text subject or policy-area string onto
// the fixed category taxonomy.
func ClassifyCategory(subject string) model.Category {
	s := strings.ToLower(subject)
	for _, r := range categoryRules {
		for _, kw := range r.keywords {
			if strings.Contains(s, kw) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}

// ClassifyCategories classifies the first subject that maps to a
// non-Other category, falling back to Other.
func ClassifyCategories(subjects []string) model.Category {
	for _, s := range subjects {
		if c := ClassifyCategory(s); c != model.CategoryOther {
			return c
		}
	}
	return model.CategoryOther
}
