package source

import (
	"fmt"
	"strings"

	"github.com/groundwork-civic/civicfeed/internal/model"
)

// Synthetic fallback records. Generated deterministically per
// jurisdiction so the pipeline never returns an empty feed when an
// upstream is unavailable. Every record carries IsSampleContent=true
// for disclosure in the UI.

// FederalFallback returns placeholder federal bills.
func FederalFallback() []model.ContentRecord {
	return []model.ContentRecord{
		{
			ID:          "fed-sample-veterans-care",
			Kind:        model.KindFederalBill,
			Title:       "Veterans Healthcare Access Expansion Act (Sample)",
			Status:      StatusInCommittee,
			Scope:       model.ScopeFederal,
			Category:    model.CategoryVeteransAffairs,
			Description: "Expands community care eligibility and telehealth coverage for enrolled veterans.",
			Summary:     "Sample bill shown because the federal bill source is unavailable.",
			RelevantDemographics: []string{model.TagVeteran, model.TagMilitaryFamily},
			RelevantInterests:    []string{"veterans", "healthcare"},
			IsSampleContent:      true,
		},
		{
			ID:          "fed-sample-housing-credit",
			Kind:        model.KindFederalBill,
			Title:       "Affordable Housing Tax Credit Extension (Sample)",
			Status:      StatusIntroduced,
			Scope:       model.ScopeFederal,
			Category:    model.CategoryHousing,
			Description: "Extends the low-income housing tax credit and raises the per-state allocation cap.",
			Summary:     "Sample bill shown because the federal bill source is unavailable.",
			RelevantDemographics: []string{model.TagRenter, model.BracketUnder50k, model.BracketUnder30k},
			RelevantInterests:    []string{"housing"},
			IncomeRelevance:      []string{model.BracketUnder30k, model.BracketUnder50k},
			IsSampleContent:      true,
		},
		{
			ID:          "fed-sample-transit-grants",
			Kind:        model.KindFederalBill,
			Title:       "National Transit Modernization Grants (Sample)",
			Status:      StatusPassedOne,
			Scope:       model.ScopeFederal,
			Category:    model.CategoryTransportation,
			Description: "Funds bus electrification and commuter rail upgrades through competitive grants.",
			Summary:     "Sample bill shown because the federal bill source is unavailable.",
			RelevantDemographics: []string{model.TagTransitRider, model.TagWorker},
			RelevantInterests:    []string{"transportation", "environment"},
			IsSampleContent:      true,
		},
	}
}

// StateFallback returns placeholder state bills scoped to the query's
// state when one is known.
func StateFallback(q Query) []model.ContentRecord {
	state := q.Location.State
	code := q.Location.StateCode
	if state == "" {
		state = "your state"
	}

	var loc *model.Location
	if code != "" {
		loc = &model.Location{State: state, StateCode: code}
	}
	slug := strings.ToLower(code)
	if slug == "" {
		slug = "state"
	}

	return []model.ContentRecord{
		{
			ID:          fmt.Sprintf("state-sample-%s-education", slug),
			Kind:        model.KindStateBill,
			Title:       fmt.Sprintf("%s Public School Funding Act (Sample)", state),
			Status:      StatusInCommittee,
			Scope:       model.ScopeState,
			Category:    model.CategoryEducation,
			Location:    loc,
			Description: "Raises per-pupil spending and funds teacher retention bonuses statewide.",
			Summary:     "Sample bill shown because the state legislature source is unavailable.",
			RelevantDemographics: []string{model.TagParent},
			RelevantInterests:    []string{"education"},
			HouseholdRelevance:   []string{model.TagParent},
			IsSampleContent:      true,
		},
		{
			ID:          fmt.Sprintf("state-sample-%s-transit-bond", slug),
			Kind:        model.KindBallotMeasure,
			Title:       fmt.Sprintf("%s Transit Infrastructure Bond (Sample)", state),
			Status:      StatusIntroduced,
			Scope:       model.ScopeState,
			Category:    model.CategoryTransportation,
			Location:    loc,
			Description: "Authorizes a general obligation bond for rail and bus rapid transit projects.",
			Summary:     "Sample measure shown because the state legislature source is unavailable.",
			RelevantDemographics: []string{model.TagTransitRider, model.TagWorker},
			RelevantInterests:    []string{"transportation"},
			IsSampleContent:      true,
		},
	}
}

// CivicFallback returns placeholder local items scoped to the query's
// city/county when known.
func CivicFallback(q Query) []model.ContentRecord {
	city := q.Location.City
	if city == "" {
		city = "your city"
	}
	var loc *model.Location
	if q.Location.StateCode != "" || q.Location.City != "" {
		loc = &model.Location{
			City:      q.Location.City,
			County:    q.Location.County,
			State:     q.Location.State,
			StateCode: q.Location.StateCode,
		}
	}
	slug := strings.ToLower(strings.ReplaceAll(city, " ", "-"))

	return []model.ContentRecord{
		{
			ID:          fmt.Sprintf("civic-sample-%s-infra-bond", slug),
			Kind:        model.KindCityProject,
			Title:       fmt.Sprintf("%s Infrastructure Bond (Sample)", city),
			Status:      StatusInProgress,
			Scope:       model.ScopeCity,
			Category:    model.CategoryInfrastructure,
			Location:    loc,
			Description: "Street, bridge, and stormwater repairs funded by a municipal bond issue.",
			Summary:     "Sample item shown because the local civic source is unavailable.",
			RelevantDemographics: []string{model.TagHomeowner, model.TagWorker},
			RelevantInterests:    []string{"infrastructure"},
			IsSampleContent:      true,
		},
		{
			ID:          fmt.Sprintf("civic-sample-%s-safety-tax", slug),
			Kind:        model.KindTaxMeasure,
			Title:       fmt.Sprintf("%s Public Safety Sales Tax (Sample)", city),
			Status:      StatusInProgress,
			Scope:       model.ScopeCity,
			Category:    model.CategoryPublicSafety,
			Location:    loc,
			Description: "Quarter-cent sales tax funding fire and emergency medical staffing.",
			Summary:     "Sample item shown because the local civic source is unavailable.",
			IncomeRelevance:      []string{model.BracketUnder30k, model.BracketUnder50k, model.BracketUnder80k},
			RelevantInterests:    []string{"public safety"},
			IsSampleContent:      true,
		},
	}
}
