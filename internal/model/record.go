// Package model defines the canonical types shared across the feed pipeline.
package model

// Kind identifies what sort of civic item a record describes.
type Kind string

const (
	KindFederalBill     Kind = "federal_bill"
	KindStateBill       Kind = "state_bill"
	KindLocalOrdinance  Kind = "local_ordinance"
	KindBallotMeasure   Kind = "ballot_measure"
	KindCityProject     Kind = "city_project"
	KindBudgetItem      Kind = "budget_item"
	KindTaxMeasure      Kind = "tax_measure"
	KindElection        Kind = "election"
	KindCandidate       Kind = "candidate"
	KindPublicMeeting   Kind = "public_meeting"
	KindInfrastructure  Kind = "infrastructure"
	KindSpecialDistrict Kind = "special_district"
)

// Scope is the governmental level a record applies to.
type Scope string

const (
	ScopeFederal         Scope = "Federal"
	ScopeState           Scope = "State"
	ScopeCounty          Scope = "County"
	ScopeCity            Scope = "City"
	ScopeLocal           Scope = "Local"
	ScopeSpecialDistrict Scope = "SpecialDistrict"
)

// Category is the fixed policy taxonomy every record is classified into.
type Category string

const (
	CategoryHousing         Category = "Housing"
	CategoryHealthcare      Category = "Healthcare"
	CategoryTransportation  Category = "Transportation"
	CategoryEducation       Category = "Education"
	CategoryEconomic        Category = "Economic"
	CategoryEnvironment     Category = "Environment"
	CategoryPublicSafety    Category = "PublicSafety"
	CategoryVeteransAffairs Category = "VeteransAffairs"
	CategorySocialIssues    Category = "SocialIssues"
	CategoryInfrastructure  Category = "Infrastructure"
	CategoryTaxPolicy       Category = "TaxPolicy"
	CategoryOther           Category = "Other"
)

// Location is the structured place a non-federal record applies to.
type Location struct {
	City      string `json:"city,omitempty"`
	County    string `json:"county,omitempty"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code,omitempty"`
}

// ContentRecord is the unified shape every source adapter normalizes into.
// Impact fields stay nil/zero until the enricher fills them; relevance
// fields are written by the scorer.
type ContentRecord struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Scope    Scope     `json:"scope"`
	Category Category  `json:"category"`
	Location *Location `json:"location,omitempty"` // always nil for Federal scope

	Description string `json:"description,omitempty"`
	Summary     string `json:"summary,omitempty"`

	Sponsor    string   `json:"sponsor,omitempty"`
	Cosponsors []string `json:"cosponsors,omitempty"`

	// Impact annotation.
	FinancialEffect *float64 `json:"financial_effect,omitempty"` // USD per year, signed
	Timeline        string   `json:"timeline,omitempty"`
	Confidence      int      `json:"confidence"` // 0-100
	IsBenefit       *bool    `json:"is_benefit,omitempty"`
	PersonalImpact  *string  `json:"personal_impact,omitempty"`

	// Scoring tags. Absent slices are treated as empty by the scorer.
	RelevantDemographics []string `json:"relevant_demographics,omitempty"`
	RelevantInterests    []string `json:"relevant_interests,omitempty"`
	IncomeRelevance      []string `json:"income_relevance,omitempty"`
	HouseholdRelevance   []string `json:"household_relevance,omitempty"`
	PriorityMatch        []string `json:"priority_match,omitempty"`
	LocationTags         []string `json:"location_tags,omitempty"`

	// IsSampleContent marks synthetic fallback records so the caller can
	// disclose that the upstream source was unavailable.
	IsSampleContent bool `json:"is_sample_content"`

	RelevanceScore       float64 `json:"relevance_score"`
	RelevanceExplanation *string `json:"relevance_explanation,omitempty"`
}

// HasImpact reports whether the impact annotation has been filled in.
func (r *ContentRecord) HasImpact() bool {
	return r.PersonalImpact != nil && r.FinancialEffect != nil
}

// ImpactAnnotation is the quintuple the enricher attaches to a record.
type ImpactAnnotation struct {
	PersonalImpact  string  `json:"personal_impact"`
	FinancialEffect float64 `json:"financial_effect"`
	Timeline        string  `json:"timeline"`
	Confidence      int     `json:"confidence"`
	IsBenefit       *bool   `json:"is_benefit"`
}

// Apply writes the annotation onto the record.
func (a ImpactAnnotation) Apply(r *ContentRecord) {
	impact := a.PersonalImpact
	effect := a.FinancialEffect
	r.PersonalImpact = &impact
	r.FinancialEffect = &effect
	r.Timeline = a.Timeline
	r.Confidence = clampConfidence(a.Confidence)
	r.IsBenefit = a.IsBenefit
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// Politician is a reference entity for sponsors and representative lookups.
// It is produced by the civic adapter; the pipeline does not own its storage.
type Politician struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Office   string `json:"office"`
	Chamber  string `json:"chamber,omitempty"`
	Party    string `json:"party,omitempty"`
	District string `json:"district,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Ptr returns a pointer to v. Convenience for the many nullable fields.
func Ptr[T any](v T) *T {
	return &v
}
