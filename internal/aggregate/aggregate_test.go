package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-civic/civicfeed/internal/model"
	"github.com/groundwork-civic/civicfeed/internal/source"
)

type stubAdapter struct {
	name    string
	scope   model.Scope
	records []model.ContentRecord
	delay   time.Duration
	panic   bool
}

func (s *stubAdapter) Name() string       { return s.name }
func (s *stubAdapter) Scope() model.Scope { return s.scope }

func (s *stubAdapter) Fetch(ctx context.Context, q source.Query) []model.ContentRecord {
	if s.panic {
		panic("upstream parser blew up")
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.records
}

func TestCollectPreservesPriorityOrder(t *testing.T) {
	reg := source.NewRegistry(
		&stubAdapter{name: "federal", scope: model.ScopeFederal, delay: 20 * time.Millisecond,
			records: []model.ContentRecord{{ID: "fed-1"}, {ID: "fed-2"}}},
		&stubAdapter{name: "state", scope: model.ScopeState,
			records: []model.ContentRecord{{ID: "state-1"}}},
		&stubAdapter{name: "civic", scope: model.ScopeCity,
			records: []model.ContentRecord{{ID: "civic-1"}}},
	)

	got := New(reg).Collect(context.Background(), source.Query{})

	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"fed-1", "fed-2", "state-1", "civic-1"}, ids,
		"order follows registry priority even when federal finishes last")
}

func TestCollectDeduplicatesLastSeenWins(t *testing.T) {
	reg := source.NewRegistry(
		&stubAdapter{name: "federal", scope: model.ScopeFederal,
			records: []model.ContentRecord{{ID: "fed-1", Title: "Stale Title"}, {ID: "fed-2"}}},
		&stubAdapter{name: "state", scope: model.ScopeState,
			records: []model.ContentRecord{{ID: "fed-1", Title: "Fresh Title"}}},
	)

	got := New(reg).Collect(context.Background(), source.Query{})

	require.Len(t, got, 2)
	assert.Equal(t, "fed-1", got[0].ID, "duplicate keeps its first position")
	assert.Equal(t, "Fresh Title", got[0].Title, "later record replaces the earlier one")
}

func TestCollectAbsorbsPanics(t *testing.T) {
	reg := source.NewRegistry(
		&stubAdapter{name: "federal", scope: model.ScopeFederal, panic: true},
		&stubAdapter{name: "state", scope: model.ScopeState,
			records: []model.ContentRecord{{ID: "state-1"}}},
	)

	got := New(reg).Collect(context.Background(), source.Query{})

	require.Len(t, got, 1)
	assert.Equal(t, "state-1", got[0].ID)
}

func TestCollectEmptyRegistry(t *testing.T) {
	got := New(source.NewRegistry()).Collect(context.Background(), source.Query{})
	assert.Empty(t, got)
}
