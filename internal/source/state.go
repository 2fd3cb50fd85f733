package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/groundwork-civic/civicfeed/internal/model"
	"github.com/groundwork-civic/civicfeed/internal/source/httpx"
)

// StateAdapter fetches state legislature bills from an OpenStates-style
// API, keyed by the jurisdiction parsed from the user's location.
type StateAdapter struct {
	apiKey  string
	baseURL string
	client  *httpx.Client
	cache   Store
	perPage int
}

// NewStateAdapter builds the state bill adapter.
func NewStateAdapter(apiKey, baseURL string, client *httpx.Client, cache Store) *StateAdapter {
	return &StateAdapter{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		cache:   cache,
		perPage: 20,
	}
}

func (a *StateAdapter) Name() string       { return "state" }
func (a *StateAdapter) Scope() model.Scope { return model.ScopeState }

type stateBillResponse struct {
	Results []struct {
		ID                      string   `json:"id"`
		Identifier              string   `json:"identifier"`
		Title                   string   `json:"title"`
		Subject                 []string `json:"subject"`
		LatestActionDescription string   `json:"latest_action_description"`
		Abstract                string   `json:"abstract"`
		Sponsorships            []struct {
			Name    string `json:"name"`
			Primary bool   `json:"primary"`
		} `json:"sponsorships"`
	} `json:"results"`
}

// Fetch returns normalized state bills for the query's jurisdiction.
func (a *StateAdapter) Fetch(ctx context.Context, q Query) []model.ContentRecord {
	key := CacheKey(a.Name(), q.Location.StateCode, categoriesKey(q.Categories))
	if !q.BypassCache {
		if records, ok := a.cache.Get(key); ok {
			return records
		}
	}

	if a.apiKey == "" {
		zap.L().Info("state: no API key configured, serving sample content")
		return StateFallback(q)
	}
	if !q.Location.IsValid {
		// No jurisdiction to query; sample content scoped to nothing.
		return StateFallback(q)
	}

	u := fmt.Sprintf("%s/bills?jurisdiction=%s&sort=updated_desc&per_page=%d",
		a.baseURL, url.QueryEscape(q.Location.State), a.perPage)

	var resp stateBillResponse
	if err := a.client.GetJSON(ctx, u, map[string]string{"X-API-KEY": a.apiKey}, &resp); err != nil {
		zap.L().Warn("state: fetch failed, serving sample content",
			zap.String("state", q.Location.StateCode),
			zap.Error(err),
		)
		return StateFallback(q)
	}
	if len(resp.Results) == 0 {
		zap.L().Warn("state: empty bill list, serving sample content",
			zap.String("state", q.Location.StateCode),
		)
		return StateFallback(q)
	}

	loc := &model.Location{State: q.Location.State, StateCode: q.Location.StateCode}

	records := make([]model.ContentRecord, 0, len(resp.Results))
	for _, b := range resp.Results {
		if b.Title == "" {
			continue
		}
		rec := model.ContentRecord{
			ID:          fmt.Sprintf("state-%s-%s", strings.ToLower(q.Location.StateCode), slugify(b.Identifier)),
			Kind:        model.KindStateBill,
			Title:       b.Title,
			Status:      NormalizeStatus(b.LatestActionDescription),
			Scope:       model.ScopeState,
			Category:    ClassifyCategories(b.Subject),
			Location:    loc,
			Description: b.LatestActionDescription,
			Summary:     b.Abstract,
		}
		for _, sp := range b.Sponsorships {
			if sp.Primary && rec.Sponsor == "" {
				rec.Sponsor = sp.Name
				continue
			}
			rec.Cosponsors = append(rec.Cosponsors, sp.Name)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return StateFallback(q)
	}

	a.cache.Put(key, records)
	zap.L().Debug("state: fetched bills",
		zap.String("state", q.Location.StateCode),
		zap.Int("count", len(records)),
	)
	return records
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}
