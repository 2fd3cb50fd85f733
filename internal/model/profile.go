package model

// Income bracket tags shared between profiles and record income-relevance
// tags. Brackets are on annual income.
const (
	BracketUnder30k  = "under_30k"
	BracketUnder50k  = "under_50k"
	BracketUnder80k  = "under_80k"
	BracketUnder120k = "under_120k"
	Bracket120kPlus  = "120k_plus"
)

// Demographic tags the scorer matches against record tags.
const (
	TagVeteran        = "veteran"
	TagMilitaryFamily = "military_family"
	TagParent         = "parent"
	TagSenior         = "senior"
	TagYoungAdult     = "young_adult"
	TagHomeowner      = "homeowner"
	TagRenter         = "renter"
	TagTransitRider   = "transit_rider"
	TagUninsured      = "uninsured"
	TagWorker         = "worker"
)

// UserProfile holds everything known about the user. Every field is
// optional; the scorer only uses factors it has signal for.
type UserProfile struct {
	Location string `json:"location,omitempty"` // free text, e.g. "Sacramento, CA"

	MonthlyIncome *float64 `json:"monthly_income,omitempty"`
	Age           *int     `json:"age,omitempty"`
	Dependents    *int     `json:"dependents,omitempty"`

	IsVeteran      *bool `json:"is_veteran,omitempty"`
	MilitaryFamily *bool `json:"military_family,omitempty"`
	Homeowner      *bool `json:"homeowner,omitempty"`
	UsesTransit    *bool `json:"uses_transit,omitempty"`
	HasHealthCover *bool `json:"has_health_coverage,omitempty"`
	Employed       *bool `json:"employed,omitempty"`

	Occupation string `json:"occupation,omitempty"`
	Industry   string `json:"industry,omitempty"`

	Interests          []string   `json:"interests,omitempty"`
	PriorityCategories []Category `json:"priority_categories,omitempty"` // ranked, most important first
}

// AnnualIncome returns the annualized income, or 0 when unknown.
func (p *UserProfile) AnnualIncome() float64 {
	if p == nil || p.MonthlyIncome == nil {
		return 0
	}
	return *p.MonthlyIncome * 12
}

// IncomeBracket returns the profile's income bracket tag, or "" when the
// income is unknown.
func (p *UserProfile) IncomeBracket() string {
	if p == nil || p.MonthlyIncome == nil {
		return ""
	}
	annual := p.AnnualIncome()
	switch {
	case annual < 30_000:
		return BracketUnder30k
	case annual < 50_000:
		return BracketUnder50k
	case annual < 80_000:
		return BracketUnder80k
	case annual < 120_000:
		return BracketUnder120k
	default:
		return Bracket120kPlus
	}
}

// DemographicTags derives the inferred demographic tag set the scorer
// matches record tags against.
func (p *UserProfile) DemographicTags() []string {
	if p == nil {
		return nil
	}
	var tags []string

	if p.Age != nil {
		switch {
		case *p.Age >= 65:
			tags = append(tags, TagSenior)
		case *p.Age <= 29:
			tags = append(tags, TagYoungAdult)
		}
	}
	if b := p.IncomeBracket(); b != "" {
		tags = append(tags, b)
	}
	if p.IsVeteran != nil && *p.IsVeteran {
		tags = append(tags, TagVeteran)
	}
	if p.MilitaryFamily != nil && *p.MilitaryFamily {
		tags = append(tags, TagMilitaryFamily)
	}
	if p.Dependents != nil && *p.Dependents > 0 {
		tags = append(tags, TagParent)
	}
	if p.Homeowner != nil {
		if *p.Homeowner {
			tags = append(tags, TagHomeowner)
		} else {
			tags = append(tags, TagRenter)
		}
	}
	if p.UsesTransit != nil && *p.UsesTransit {
		tags = append(tags, TagTransitRider)
	}
	if p.HasHealthCover != nil && !*p.HasHealthCover {
		tags = append(tags, TagUninsured)
	}
	if p.Employed != nil && *p.Employed {
		tags = append(tags, TagWorker)
	}

	return tags
}

// HasTag reports whether the profile's inferred demographic set contains tag.
func (p *UserProfile) HasTag(tag string) bool {
	for _, t := range p.DemographicTags() {
		if t == tag {
			return true
		}
	}
	return false
}
