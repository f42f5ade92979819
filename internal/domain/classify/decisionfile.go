package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// DefaultDecisionFile is the per-team decision file name, written next to
// the team's data directory so repeat runs are reproducible without
// re-deciding.
const DefaultDecisionFile = ".swimrecords-classify.json"

const decisionFilePermission = 0o600

// decisionFile is the persisted form of a DecisionSet.
type decisionFile struct {
	DecisionSet
	ClassifiedAt string `json:"classified_at"`
	ToolVersion  string `json:"tool_version"`
}

// SaveDecisions persists a decision set with a timestamp and tool-version
// tag. The set must validate; a half-decided file would poison every
// later run.
func SaveDecisions(path string, d DecisionSet, version string) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("save decisions: %w", err)
	}
	out := decisionFile{
		DecisionSet:  d,
		ClassifiedAt: time.Now().Format(time.RFC3339),
		ToolVersion:  version,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("save decisions: %w", err)
	}
	if err := os.WriteFile(path, data, decisionFilePermission); err != nil {
		return fmt.Errorf("save decisions: %w", err)
	}
	return nil
}

// LoadDecisions reads a previously saved decision set. A missing file
// maps to ErrNoDecisionFile so callers can distinguish "never decided"
// from a corrupt file.
func LoadDecisions(path string) (DecisionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DecisionSet{}, fmt.Errorf("%w: %s", ErrNoDecisionFile, path)
		}
		return DecisionSet{}, fmt.Errorf("load decisions: %w", err)
	}
	var in decisionFile
	if err := json.Unmarshal(data, &in); err != nil {
		return DecisionSet{}, fmt.Errorf("load decisions: %w", err)
	}
	return in.DecisionSet, nil
}
