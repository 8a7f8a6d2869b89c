package model

import "context"

// DefaultThreshold is the visible fraction of the sentinel that triggers a load.
const DefaultThreshold = 0.1

// sentinelHeight is the number of rows the trailing marker occupies.
const sentinelHeight = 1

// Viewport describes the rows currently on screen.
type Viewport struct {
	Offset int // first displayed row
	Height int // rows that fit on screen
	Total  int // rows rendered
}

// Sentinel requests the next page when a marker placed after the last row
// scrolls into view. It relies on the pager's in-flight guard for
// idempotence and is not debounced.
type Sentinel struct {
	pager     Pager
	threshold float64
}

// NewSentinel returns a sentinel driving p.
func NewSentinel(p Pager, threshold float64) *Sentinel {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Sentinel{
		pager:     p,
		threshold: threshold,
	}
}

// Visible returns the fraction of the sentinel inside the viewport.
func (s *Sentinel) Visible(v Viewport) float64 {
	if v.Height <= 0 {
		return 0
	}
	top, bottom := v.Total, v.Total+sentinelHeight
	lo, hi := max(top, v.Offset), min(bottom, v.Offset+v.Height)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / sentinelHeight
}

// Observe checks the viewport and requests the next page if the sentinel is
// visible, a next page exists, and none is being fetched.
func (s *Sentinel) Observe(ctx context.Context, v Viewport) bool {
	if s.Visible(v) < s.threshold {
		return false
	}
	st := s.pager.State()
	if !st.HasNextPage || st.IsFetchingNextPage {
		return false
	}
	return s.pager.FetchNextPage(ctx)
}
