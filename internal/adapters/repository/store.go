// Package repository defines the team swim store interface and errors.
package repository

import (
	"context"

	"github.com/laneline/swimrecords/internal/domain/model"
)

// Store provides access to one team's classified swim history. Writers
// append whole per-swimmer batches; readers see a stable snapshot of
// everything added so far.
type Store interface {
	// Add appends classified swims to the store.
	Add(ctx context.Context, swims ...model.ClassifiedSwim) error

	// All returns every stored swim in insertion order.
	All(ctx context.Context) []model.ClassifiedSwim

	// ByCourse returns stored swims for one course, insertion order.
	ByCourse(ctx context.Context, course string) []model.ClassifiedSwim

	// BySeason returns stored swims dated within one calendar year.
	// Swims without a parseable date are never part of a season.
	BySeason(ctx context.Context, year int) []model.ClassifiedSwim

	// Swimmers returns the distinct swimmer names seen, sorted.
	Swimmers(ctx context.Context) []string

	// Count returns the number of stored swims.
	Count(ctx context.Context) int
}
