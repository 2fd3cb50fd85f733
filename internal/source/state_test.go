package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-civic/civicfeed/internal/location"
	"github.com/groundwork-civic/civicfeed/internal/model"
)

func caQuery() Query {
	return Query{Location: location.Parsed{
		City:      "Sacramento",
		State:     "California",
		StateCode: "CA",
		IsValid:   true,
	}}
}

func TestStateFetchNoKeyServesSamples(t *testing.T) {
	a := NewStateAdapter("", "https://v3.example.org", testClient(), NewMemoryCache(time.Hour, 16))

	records := a.Fetch(context.Background(), caQuery())
	require.Len(t, records, 2)
	for _, r := range records {
		assert.True(t, r.IsSampleContent)
		assert.Equal(t, model.ScopeState, r.Scope)
		require.NotNil(t, r.Location)
		assert.Equal(t, "CA", r.Location.StateCode)
	}
	assert.Contains(t, records[0].Title, "California")
}

func TestStateFetchInvalidLocationServesSamples(t *testing.T) {
	a := NewStateAdapter("key-1", "https://v3.example.org", testClient(), NewMemoryCache(time.Hour, 16))

	records := a.Fetch(context.Background(), Query{Location: location.Parsed{IsValid: false}})
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.True(t, r.IsSampleContent)
		assert.Nil(t, r.Location, "no jurisdiction known, no location attached")
	}
}

func TestStateFetchNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "California", r.URL.Query().Get("jurisdiction"))
		w.Write([]byte(`{"results":[
			{"identifier":"AB 123","title":"School Facility Modernization",
			 "subject":["Education","Bonds"],
			 "latest_action_description":"Referred to Com. on ED.",
			 "abstract":"Modernizes aging school facilities.",
			 "sponsorships":[{"name":"Alvarez","primary":true},{"name":"Chen","primary":false}]}
		]}`))
	}))
	defer srv.Close()

	a := NewStateAdapter("key-1", srv.URL, testClient(), NewMemoryCache(time.Hour, 16))

	records := a.Fetch(context.Background(), caQuery())
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "state-ca-ab-123", r.ID)
	assert.Equal(t, model.KindStateBill, r.Kind)
	assert.Equal(t, StatusInCommittee, r.Status)
	assert.Equal(t, model.CategoryEducation, r.Category)
	assert.Equal(t, "Alvarez", r.Sponsor)
	assert.Equal(t, []string{"Chen"}, r.Cosponsors)
	assert.Equal(t, "Modernizes aging school facilities.", r.Summary)
	require.NotNil(t, r.Location)
	assert.Equal(t, "California", r.Location.State)
	assert.False(t, r.IsSampleContent)
}

func TestStateFetchEmptyResultsServesSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	a := NewStateAdapter("key-1", srv.URL, testClient(), NewMemoryCache(time.Hour, 16))

	records := a.Fetch(context.Background(), caQuery())
	require.NotEmpty(t, records)
	assert.True(t, records[0].IsSampleContent)
}

func TestStateFetchCachesPerState(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"results":[{"identifier":"SB 1","title":"Budget Act","latest_action_description":"Introduced."}]}`))
	}))
	defer srv.Close()

	a := NewStateAdapter("key-1", srv.URL, testClient(), NewMemoryCache(time.Hour, 16))

	a.Fetch(context.Background(), caQuery())
	a.Fetch(context.Background(), caQuery())
	assert.Equal(t, 1, calls)

	txQuery := Query{Location: location.Parsed{State: "Texas", StateCode: "TX", IsValid: true}}
	a.Fetch(context.Background(), txQuery)
	assert.Equal(t, 2, calls, "different state misses the cache")
}
