// Package source defines the swim data source contract and the registry
// that resolves a configured source name to an implementation.
//
// A source wraps wherever swim results come from — an analytics API
// dump, a scraped site, a directory of exported files — and hands the
// pipeline tabular per-swimmer histories in the canonical column set.
// The pipeline itself is source-agnostic.
package source

import (
	"context"

	"github.com/laneline/swimrecords/internal/domain/model"
)

// RosterEntry is one swimmer on a team roster.
type RosterEntry struct {
	SwimmerID   string
	SwimmerName string
	Gender      string
	Grade       string
}

// Source provides roster and per-swimmer history access for one upstream
// data provider.
type Source interface {
	// Name returns the human-readable source name.
	Name() string

	// TeamRoster fetches the roster for a team over the given seasons.
	// An empty seasons slice means all available seasons.
	TeamRoster(ctx context.Context, teamID string, seasons []string) ([]RosterEntry, error)

	// SwimmerHistory fetches one swimmer's complete raw history. Rows
	// carry raw fields only; normalization happens downstream.
	SwimmerHistory(ctx context.Context, swimmerID string) (model.Career, error)

	// ValidateTeamID reports whether a team identifier is well-formed
	// for this source.
	ValidateTeamID(teamID string) bool
}
