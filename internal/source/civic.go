package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/groundwork-civic/civicfeed/internal/model"
	"github.com/groundwork-civic/civicfeed/internal/source/httpx"
)

// CivicAdapter fetches city-level items (ordinances, projects, meetings,
// ballot measures) and elected representatives from a civic data API.
type CivicAdapter struct {
	apiKey  string
	baseURL string
	client  *httpx.Client
	cache   Store
}

// NewCivicAdapter builds the local civic data adapter.
func NewCivicAdapter(apiKey, baseURL string, client *httpx.Client, cache Store) *CivicAdapter {
	return &CivicAdapter{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		cache:   cache,
	}
}

func (a *CivicAdapter) Name() string       { return "civic" }
func (a *CivicAdapter) Scope() model.Scope { return model.ScopeCity }

var civicKinds = map[string]model.Kind{
	"ordinance":      model.KindLocalOrdinance,
	"project":        model.KindCityProject,
	"meeting":        model.KindPublicMeeting,
	"measure":        model.KindBallotMeasure,
	"tax":            model.KindTaxMeasure,
	"budget":         model.KindBudgetItem,
	"infrastructure": model.KindInfrastructure,
	"election":       model.KindElection,
}

type civicItemsResponse struct {
	Items []struct {
		ID          string   `json:"id"`
		Type        string   `json:"type"`
		Title       string   `json:"title"`
		Status      string   `json:"status"`
		Description string   `json:"description"`
		Topics      []string `json:"topics"`
		Sponsor     string   `json:"sponsor"`
	} `json:"items"`
}

type representativesResponse struct {
	Officials []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Office   string `json:"office"`
		Chamber  string `json:"chamber"`
		Party    string `json:"party"`
		District string `json:"district"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
	} `json:"officials"`
}

// Fetch returns normalized local items for the query's city.
func (a *CivicAdapter) Fetch(ctx context.Context, q Query) []model.ContentRecord {
	key := CacheKey(a.Name(), q.Location.City, q.Location.StateCode, categoriesKey(q.Categories))
	if !q.BypassCache {
		if records, ok := a.cache.Get(key); ok {
			return records
		}
	}

	if a.apiKey == "" {
		zap.L().Info("civic: no API key configured, serving sample content")
		return CivicFallback(q)
	}
	if !q.Location.IsValid || q.Location.City == "" {
		return CivicFallback(q)
	}

	u := fmt.Sprintf("%s/local/items?city=%s&state=%s&key=%s",
		a.baseURL,
		url.QueryEscape(q.Location.City),
		url.QueryEscape(q.Location.StateCode),
		url.QueryEscape(a.apiKey),
	)

	var resp civicItemsResponse
	if err := a.client.GetJSON(ctx, u, nil, &resp); err != nil {
		zap.L().Warn("civic: fetch failed, serving sample content",
			zap.String("city", q.Location.City),
			zap.Error(err),
		)
		return CivicFallback(q)
	}
	if len(resp.Items) == 0 {
		return CivicFallback(q)
	}

	loc := &model.Location{
		City:      q.Location.City,
		State:     q.Location.State,
		StateCode: q.Location.StateCode,
	}

	records := make([]model.ContentRecord, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.Title == "" {
			continue
		}
		kind, ok := civicKinds[strings.ToLower(it.Type)]
		if !ok {
			kind = model.KindCityProject
		}
		records = append(records, model.ContentRecord{
			ID:          fmt.Sprintf("civic-%s", slugify(it.ID)),
			Kind:        kind,
			Title:       it.Title,
			Status:      NormalizeStatus(it.Status),
			Scope:       model.ScopeCity,
			Category:    ClassifyCategories(it.Topics),
			Location:    loc,
			Description: it.Description,
			Sponsor:     it.Sponsor,
		})
	}
	if len(records) == 0 {
		return CivicFallback(q)
	}

	a.cache.Put(key, records)
	zap.L().Debug("civic: fetched local items",
		zap.String("city", q.Location.City),
		zap.Int("count", len(records)),
	)
	return records
}

// Representatives looks up elected officials for a street address.
// Unlike Fetch, callers need to distinguish lookup failure from an
// empty district, so errors are returned rather than swallowed.
func (a *CivicAdapter) Representatives(ctx context.Context, address string) ([]model.Politician, error) {
	if a.apiKey == "" {
		return nil, eris.New("civic: no API key configured")
	}
	if strings.TrimSpace(address) == "" {
		return nil, eris.New("civic: empty address")
	}

	u := fmt.Sprintf("%s/representatives?address=%s&key=%s",
		a.baseURL, url.QueryEscape(address), url.QueryEscape(a.apiKey))

	var resp representativesResponse
	if err := a.client.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, eris.Wrap(err, "civic: representative lookup failed")
	}

	reps := make([]model.Politician, 0, len(resp.Officials))
	for _, o := range resp.Officials {
		reps = append(reps, model.Politician{
			ID:       o.ID,
			Name:     o.Name,
			Office:   o.Office,
			Chamber:  o.Chamber,
			Party:    o.Party,
			District: o.District,
			Phone:    o.Phone,
			Email:    o.Email,
		})
	}
	return reps, nil
}
