// Package enrich attaches personalized impact annotations to records by
// asking a language model how each item affects the user's situation.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/groundwork-civic/civicfeed/internal/model"
	"github.com/groundwork-civic/civicfeed/pkg/anthropic"
	"github.com/groundwork-civic/civicfeed/pkg/jsonx"
)

const (
	defaultModel       = "claude-haiku-4-5-20251001"
	defaultConcurrency = 8
	maxTokens          = 1024
)

const systemPrompt = `You analyze how a piece of civic or legislative content affects one specific person. Respond with a single JSON object and nothing else:
{
  "personal_impact": "2-3 sentences, second person, concrete",
  "financial_effect": <signed number, estimated USD per year for this person>,
  "timeline": "when they would feel it, e.g. '6-12 months'",
  "confidence": <0-100>,
  "is_benefit": <true|false|null>
}
Be specific to the person's situation. Never invent provisions not in the item.`

// fallbackImpact is attached when no annotation could be generated, so
// every record leaves the enricher with the impact fields populated.
var fallbackImpact = model.ImpactAnnotation{
	PersonalImpact:  "We couldn't generate a personalized impact estimate for this item right now.",
	FinancialEffect: 0,
	Timeline:        "Unknown",
	Confidence:      0,
	IsBenefit:       nil,
}

// Enricher annotates records with personalized impact estimates.
type Enricher struct {
	ai            anthropic.Client
	model         string
	maxConcurrent int
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithModel overrides the model ID.
func WithModel(m string) Option {
	return func(e *Enricher) { e.model = m }
}

// WithConcurrency overrides the parallel request cap.
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.maxConcurrent = n
		}
	}
}

// New creates an enricher. A nil client is allowed; every record then
// gets the fallback annotation.
func New(ai anthropic.Client, opts ...Option) *Enricher {
	e := &Enricher{
		ai:            ai,
		model:         defaultModel,
		maxConcurrent: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnrichAll annotates every record that does not already carry an
// impact. Records are processed concurrently; a failure on one record
// degrades that record to the fallback annotation and leaves the rest
// untouched.
func (e *Enricher) EnrichAll(ctx context.Context, records []model.ContentRecord, profile *model.UserProfile) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrent)

	for i := range records {
		r := &records[i]
		if r.HasImpact() {
			continue
		}
		g.Go(func() error {
			annotation, err := e.enrichOne(gctx, r, profile)
			if err != nil {
				zap.L().Warn("enrich: falling back to generic annotation",
					zap.String("record_id", r.ID),
					zap.Error(err),
				)
				annotation = fallbackImpact
			}
			annotation.Apply(r)
			return nil
		})
	}
	_ = g.Wait()
}

// impactPayload is the JSON shape expected back from the model.
type impactPayload struct {
	PersonalImpact  *string  `json:"personal_impact"`
	FinancialEffect *float64 `json:"financial_effect"`
	Timeline        string   `json:"timeline"`
	Confidence      int      `json:"confidence"`
	IsBenefit       *bool    `json:"is_benefit"`
}

func (e *Enricher) enrichOne(ctx context.Context, r *model.ContentRecord, profile *model.UserProfile) (model.ImpactAnnotation, error) {
	if e.ai == nil {
		return model.ImpactAnnotation{}, eris.New("enrich: no analysis client configured")
	}

	resp, err := e.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(r, profile)},
		},
	})
	if err != nil {
		return model.ImpactAnnotation{}, err
	}
	resp.Usage.LogCost(e.model, "impact")

	var payload impactPayload
	if err := jsonx.DecodeObject(resp.Text(), &payload); err != nil {
		return model.ImpactAnnotation{}, err
	}
	if payload.PersonalImpact == nil || strings.TrimSpace(*payload.PersonalImpact) == "" {
		return model.ImpactAnnotation{}, eris.New("enrich: response missing personal_impact")
	}
	if payload.FinancialEffect == nil {
		return model.ImpactAnnotation{}, eris.New("enrich: response missing financial_effect")
	}

	return model.ImpactAnnotation{
		PersonalImpact:  *payload.PersonalImpact,
		FinancialEffect: *payload.FinancialEffect,
		Timeline:        payload.Timeline,
		Confidence:      payload.Confidence,
		IsBenefit:       payload.IsBenefit,
	}, nil
}

// buildPrompt renders the record and profile into the analysis request.
func buildPrompt(r *model.ContentRecord, profile *model.UserProfile) string {
	var b strings.Builder

	b.WriteString("ITEM\n")
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	fmt.Fprintf(&b, "Type: %s, Level: %s, Status: %s, Category: %s\n", r.Kind, r.Scope, r.Status, r.Category)
	if r.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", r.Description)
	}
	if r.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", r.Summary)
	}
	if r.Location != nil {
		fmt.Fprintf(&b, "Applies to: %s %s\n", r.Location.City, r.Location.State)
	}
	if r.IsSampleContent {
		b.WriteString("Note: this is illustrative sample content.\n")
	}

	b.WriteString("\nPERSON\n")
	if profile == nil {
		b.WriteString("No profile details are known.\n")
		return b.String()
	}
	if profile.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", profile.Location)
	}
	if profile.MonthlyIncome != nil {
		fmt.Fprintf(&b, "Income: $%.0f/month\n", *profile.MonthlyIncome)
	}
	if profile.Age != nil {
		fmt.Fprintf(&b, "Age: %d\n", *profile.Age)
	}
	if profile.Dependents != nil {
		fmt.Fprintf(&b, "Dependents: %d\n", *profile.Dependents)
	}
	if profile.IsVeteran != nil && *profile.IsVeteran {
		b.WriteString("Veteran: yes\n")
	}
	if profile.Homeowner != nil {
		if *profile.Homeowner {
			b.WriteString("Housing: owns home\n")
		} else {
			b.WriteString("Housing: rents\n")
		}
	}
	if profile.Occupation != "" {
		fmt.Fprintf(&b, "Occupation: %s\n", profile.Occupation)
	}
	if len(profile.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(profile.Interests, ", "))
	}

	return b.String()
}
