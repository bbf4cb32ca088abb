package store

import "sync/atomic"

// Sequence hands out monotonically increasing ids starting at 1. Ids are never reused.
type Sequence struct {
	last atomic.Int64
}

// Next reserves and returns the next id.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Last returns the most recently issued id, or 0 if none was issued.
func (s *Sequence) Last() int64 {
	return s.last.Load()
}
