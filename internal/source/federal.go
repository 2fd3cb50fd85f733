package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/groundwork-civic/civicfeed/internal/model"
	"github.com/groundwork-civic/civicfeed/internal/ratelimit"
	"github.com/groundwork-civic/civicfeed/internal/source/httpx"
)

// FederalAdapter fetches federal bills from a Congress-style bill list
// API. Federal records never carry a location.
type FederalAdapter struct {
	apiKey  string
	baseURL string
	client  *httpx.Client
	cache   Store
	guard   *ratelimit.Guard
	limit   int
}

// NewFederalAdapter builds the federal bill adapter. The guard may be
// nil when the upstream has no published quota.
func NewFederalAdapter(apiKey, baseURL string, client *httpx.Client, cache Store, guard *ratelimit.Guard) *FederalAdapter {
	return &FederalAdapter{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		cache:   cache,
		guard:   guard,
		limit:   20,
	}
}

func (a *FederalAdapter) Name() string       { return "federal" }
func (a *FederalAdapter) Scope() model.Scope { return model.ScopeFederal }

// billListResponse is the subset of the upstream response the adapter
// depends on. Exact wire-format fidelity is a non-goal.
type billListResponse struct {
	Bills []struct {
		Type         string `json:"type"`
		Number       string `json:"number"`
		Title        string `json:"title"`
		LatestAction struct {
			ActionDate string `json:"actionDate"`
			Text       string `json:"text"`
		} `json:"latestAction"`
		PolicyArea struct {
			Name string `json:"name"`
		} `json:"policyArea"`
		Sponsor struct {
			BioguideID string `json:"bioguideId"`
			FullName   string `json:"fullName"`
		} `json:"sponsor"`
	} `json:"bills"`
}

// Fetch returns normalized federal bills, serving from cache when
// possible and synthesizing sample content on any failure.
func (a *FederalAdapter) Fetch(ctx context.Context, q Query) []model.ContentRecord {
	key := CacheKey(a.Name(), categoriesKey(q.Categories), fmt.Sprint(a.limit))
	if !q.BypassCache {
		if records, ok := a.cache.Get(key); ok {
			return records
		}
	}

	if a.apiKey == "" {
		zap.L().Info("federal: no API key configured, serving sample content")
		return FederalFallback()
	}

	if a.guard != nil {
		if d := a.guard.CanMakeRequest(a.apiKey); !d.Allowed {
			zap.L().Warn("federal: quota denied, serving sample content", zap.String("reason", d.Reason))
			return FederalFallback()
		}
		defer a.guard.RecordRequest(a.apiKey)
	}

	u := fmt.Sprintf("%s/bill?api_key=%s&limit=%d&sort=updateDate+desc",
		a.baseURL, url.QueryEscape(a.apiKey), a.limit)

	var resp billListResponse
	if err := a.client.GetJSON(ctx, u, nil, &resp); err != nil {
		zap.L().Warn("federal: fetch failed, serving sample content", zap.Error(err))
		return FederalFallback()
	}
	if len(resp.Bills) == 0 {
		zap.L().Warn("federal: empty bill list, serving sample content")
		return FederalFallback()
	}

	records := make([]model.ContentRecord, 0, len(resp.Bills))
	for _, b := range resp.Bills {
		if b.Title == "" {
			continue
		}
		records = append(records, model.ContentRecord{
			ID:          fmt.Sprintf("fed-%s%s", strings.ToLower(b.Type), b.Number),
			Kind:        model.KindFederalBill,
			Title:       b.Title,
			Status:      NormalizeStatus(b.LatestAction.Text),
			Scope:       model.ScopeFederal,
			Category:    ClassifyCategory(b.PolicyArea.Name),
			Description: b.LatestAction.Text,
			Sponsor:     b.Sponsor.BioguideID,
		})
	}
	if len(records) == 0 {
		return FederalFallback()
	}

	a.cache.Put(key, records)
	zap.L().Debug("federal: fetched bills", zap.Int("count", len(records)))
	return records
}

// categoriesKey renders the category filter for cache keying.
func categoriesKey(cats []model.Category) string {
	if len(cats) == 0 {
		return "all"
	}
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
