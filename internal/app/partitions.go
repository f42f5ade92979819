package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/laneline/swimrecords/internal/domain/classify"
	"github.com/laneline/swimrecords/internal/domain/model"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// partitionHeader is the column set of classified partition files: the
// canonical swim columns plus the classification annotations.
var partitionHeader = []string{
	"Name", "Team", "Event", "SwimTime", "SwimDate", "Age", "Meet", "Gender",
	"classification_category", "classification_decision",
	"classification_rationale", "transfer_rule_days",
}

// writePartitions writes one swimmer's official and excluded partition
// files. Empty partitions produce no file, matching the collector's
// sparse layout. Swimmers map to disjoint files, so concurrent batch
// items never contend here.
func (s *Service) writePartitions(res classify.Result) error {
	official := filepath.Join(s.outputDir, "classified", "official")
	excluded := filepath.Join(s.outputDir, "classified", "excluded")

	if err := writePartitionFile(filepath.Join(official, res.SwimmerID+".csv"), res.Official); err != nil {
		return err
	}
	return writePartitionFile(filepath.Join(excluded, res.SwimmerID+".csv"), res.Excluded)
}

func writePartitionFile(path string, swims []model.ClassifiedSwim) error {
	if len(swims) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), directoryPermission); err != nil {
		return fmt.Errorf("write partition: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("write partition: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(partitionHeader); err != nil {
		return fmt.Errorf("write partition: %w", err)
	}
	for _, cs := range swims {
		days := ""
		if cs.RuleDays > 0 {
			days = strconv.Itoa(cs.RuleDays)
		}
		row := []string{
			cs.Swim.SwimmerName, cs.Swim.Team, cs.Swim.Event, cs.Swim.Time,
			cs.Swim.DateRaw, cs.Swim.Age, cs.Swim.Meet, cs.Swim.Gender,
			string(cs.Label), string(cs.Decision), cs.Rationale, days,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write partition: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write partition: %w", err)
	}
	return nil
}

// progressLog is the resume-bookkeeping file written after each batch.
type progressLog struct {
	RunID   string       `json:"run_id"`
	LastRun string       `json:"last_run"`
	Items   []ItemResult `json:"processed_swimmers"`
}

// writeProgressLog records which swimmers the last run processed so an
// operator can audit or resume after appending new meets.
func (s *Service) writeProgressLog(summary Summary) error {
	dir := filepath.Join(s.outputDir, "classified")
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("progress log: %w", err)
	}
	out := progressLog{
		RunID:   summary.RunID,
		LastRun: time.Now().Format(time.RFC3339),
		Items:   summary.Items,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("progress log: %w", err)
	}
	path := filepath.Join(dir, "classification_progress.json")
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("progress log: %w", err)
	}
	return nil
}
