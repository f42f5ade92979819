// Package repository defines the team swim store interface and errors.
package repository

import "github.com/laneline/swimrecords/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the backing slice for large teams.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.swims = make([]model.ClassifiedSwim, 0, n)
		}
	}
}
