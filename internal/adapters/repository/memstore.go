package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/laneline/swimrecords/internal/domain/model"
)

// In-memory Store implementation.
//
// The batch pipeline classifies swimmers concurrently and fans results
// into this store, so writes are serialized with a mutex; reads copy out
// so callers can sort and slice without holding the lock.
type MemStore struct {
	mu    sync.RWMutex
	swims []model.ClassifiedSwim
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends classified swims to the store.
func (s *MemStore) Add(ctx context.Context, swims ...model.ClassifiedSwim) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreClosed, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swims = append(s.swims, swims...)
	return nil
}

// All returns every stored swim in insertion order.
func (s *MemStore) All(_ context.Context) []model.ClassifiedSwim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ClassifiedSwim, len(s.swims))
	copy(out, s.swims)
	return out
}

// ByCourse returns stored swims for one course, insertion order.
func (s *MemStore) ByCourse(_ context.Context, course string) []model.ClassifiedSwim {
	course = strings.ToLower(course)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ClassifiedSwim
	for _, cs := range s.swims {
		if cs.Swim.Course == course {
			out = append(out, cs)
		}
	}
	return out
}

// BySeason returns stored swims dated within one calendar year.
func (s *MemStore) BySeason(_ context.Context, year int) []model.ClassifiedSwim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ClassifiedSwim
	for _, cs := range s.swims {
		if cs.Swim.HasDate() && cs.Swim.Date.Year() == year {
			out = append(out, cs)
		}
	}
	return out
}

// Swimmers returns the distinct swimmer names seen, sorted.
func (s *MemStore) Swimmers(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, cs := range s.swims {
		seen[cs.Swim.SwimmerName] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of stored swims.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.swims)
}
