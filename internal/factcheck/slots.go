package factcheck

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ScopeComparison is the slot key for version-comparison results.
const ScopeComparison = "comparison"

// Slots keeps the latest result per document version plus one comparison
// slot, in memory for the current session only. A new run for the same
// scope overwrites the previous result.
type Slots struct {
	c *gocache.Cache
}

// NewSlots creates the session result store. Entries expire after ttl;
// ttl <= 0 keeps them for the whole session.
func NewSlots(ttl time.Duration) *Slots {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Slots{c: gocache.New(ttl, 10*time.Minute)}
}

// Put stores the result for a version scope.
func (s *Slots) Put(r *Result) {
	s.c.SetDefault(r.Scope, r)
}

// Get returns the stored result for a version scope.
func (s *Slots) Get(scope string) (*Result, bool) {
	v, ok := s.c.Get(scope)
	if !ok {
		return nil, false
	}
	return v.(*Result), true
}

// PutComparison stores the comparison result.
func (s *Slots) PutComparison(r *ComparisonResult) {
	s.c.SetDefault(ScopeComparison, r)
}

// GetComparison returns the stored comparison result.
func (s *Slots) GetComparison() (*ComparisonResult, bool) {
	v, ok := s.c.Get(ScopeComparison)
	if !ok {
		return nil, false
	}
	return v.(*ComparisonResult), true
}
