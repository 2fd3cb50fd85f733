// Package rank orders scored records and pages them out with a
// monotonically growing window.
package rank

import (
	"math"
	"sort"
	"sync"

	"github.com/groundwork-civic/civicfeed/internal/model"
)

// Sort orders records by relevance, highest first. Records tied on
// relevance fall back to the larger absolute financial effect, but only
// when both are marked as benefits. The sort is stable, so records the
// comparator cannot separate keep their aggregation order.
func Sort(records []model.ContentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if bothBenefits(a, b) {
			return absEffect(a) > absEffect(b)
		}
		return false
	})
}

func bothBenefits(a, b *model.ContentRecord) bool {
	return a.IsBenefit != nil && *a.IsBenefit && b.IsBenefit != nil && *b.IsBenefit
}

func absEffect(r *model.ContentRecord) float64 {
	if r.FinancialEffect == nil {
		return 0
	}
	return math.Abs(*r.FinancialEffect)
}

// Page is one paginated slice of a ranked list.
type Page struct {
	Items     []model.ContentRecord
	HasMore   bool
	Remaining int
}

// Window tracks how much of a ranked list has been requested so far.
// The visible prefix only ever grows; asking for fewer items than before
// returns the previous, larger window.
type Window struct {
	mu    sync.Mutex
	limit int
}

// NewWindow creates a window that starts at zero visible items.
func NewWindow() *Window {
	return &Window{}
}

// Grow widens the window to limit if larger and returns the page for
// the current window size.
func (w *Window) Grow(records []model.ContentRecord, limit int) Page {
	w.mu.Lock()
	if limit > w.limit {
		w.limit = limit
	}
	n := w.limit
	w.mu.Unlock()

	return Cut(records, n)
}

// Reset shrinks the window back to zero, for a fresh feed load.
func (w *Window) Reset() {
	w.mu.Lock()
	w.limit = 0
	w.mu.Unlock()
}

// Cut returns the first n records as a page. n larger than the list
// returns everything.
func Cut(records []model.ContentRecord, n int) Page {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return Page{
		Items:     records[:n],
		HasMore:   n < len(records),
		Remaining: len(records) - n,
	}
}
