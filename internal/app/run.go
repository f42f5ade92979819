package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/laneline/swimrecords/internal/adapters/source"
	"github.com/laneline/swimrecords/internal/domain/events"
	"github.com/laneline/swimrecords/internal/domain/model"
	"github.com/laneline/swimrecords/pkg/logger"
	"github.com/laneline/swimrecords/pkg/metrics"
)

// Item statuses in a batch summary.
const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
)

// ItemResult is the per-swimmer outcome of a batch. Failures to read or
// parse one swimmer never abort the batch; they become skip entries.
type ItemResult struct {
	SwimmerID string `json:"swimmer_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Official  int    `json:"official"`
	Excluded  int    `json:"excluded"`
}

// Summary aggregates one classification batch.
type Summary struct {
	RunID     string              `json:"run_id"`
	StartedAt time.Time           `json:"started_at"`
	Duration  time.Duration       `json:"duration"`
	Swimmers  int                 `json:"swimmers"`
	Processed int                 `json:"processed"`
	Skipped   int                 `json:"skipped"`
	Official  int                 `json:"official"`
	Excluded  int                 `json:"excluded"`
	ByLabel   map[model.Label]int `json:"by_label"`
	Items     []ItemResult        `json:"items"`
}

// Classify runs the classification batch: load every swimmer's history
// from the source, normalize, classify against the decision set, fan the
// annotated swims into the store and write the official/excluded CSV
// partitions.
//
// Preconditions are checked once up front: a complete decision set and a
// configured source and classifier. Per-swimmer problems degrade to skip
// entries in the summary.
func (s *Service) Classify(ctx context.Context) (Summary, error) {
	start := time.Now()

	if s.src == nil {
		return Summary{}, ErrNoSource
	}
	if s.classifier == nil {
		return Summary{}, ErrNoClassifier
	}
	if err := s.decisions.Validate(); err != nil {
		return Summary{}, err
	}

	roster, err := s.src.TeamRoster(ctx, "", nil)
	if err != nil {
		return Summary{}, fmt.Errorf("load roster: %w", err)
	}

	summary := Summary{
		RunID:     uuid.NewString(),
		StartedAt: start,
		Swimmers:  len(roster),
		ByLabel:   make(map[model.Label]int),
	}
	s.log.Info(ctx, "starting classification batch",
		logger.String("run_id", summary.RunID),
		logger.Int("swimmers", len(roster)),
		logger.Int("parallelism", s.parallelism))

	bar := s.newProgressBar(len(roster))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for _, entry := range roster {
		entry := entry
		g.Go(func() error {
			item := s.classifySwimmer(gctx, entry)
			mu.Lock()
			s.recordItem(&summary, item.result, item.counts)
			mu.Unlock()
			if bar != nil {
				_ = bar.Add(1)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("classification batch: %w", err)
	}

	summary.Duration = time.Since(start)
	metrics.RecordBatchDuration(summary.Duration.Seconds())

	if err := s.writeProgressLog(summary); err != nil {
		s.log.Warn(ctx, "progress log not written", logger.Error(err))
	}

	s.log.Info(ctx, "classification batch complete",
		logger.String("run_id", summary.RunID),
		logger.Int("processed", summary.Processed),
		logger.Int("skipped", summary.Skipped),
		logger.Int("official", summary.Official),
		logger.Int("excluded", summary.Excluded),
		logger.Duration("duration", summary.Duration))
	return summary, nil
}

// swimmerOutcome bundles the per-item result with label counts so the
// summary can be updated under one lock acquisition.
type swimmerOutcome struct {
	result ItemResult
	counts map[model.Label]int
}

// classifySwimmer processes one career end to end. All failure paths
// return a skip item; only context cancellation propagates as an error
// through the errgroup.
func (s *Service) classifySwimmer(ctx context.Context, entry source.RosterEntry) swimmerOutcome {
	started := time.Now()
	skip := func(reason string) swimmerOutcome {
		metrics.RecordSwimmerSkipped(reason)
		return swimmerOutcome{result: ItemResult{
			SwimmerID: entry.SwimmerID,
			Status:    StatusSkipped,
			Reason:    reason,
		}}
	}

	career, err := s.src.SwimmerHistory(ctx, entry.SwimmerID)
	if err != nil {
		s.log.Warn(ctx, "swimmer history unavailable",
			logger.String("swimmer", entry.SwimmerID), logger.Error(err))
		return skip("history unavailable")
	}
	if len(career.Swims) == 0 {
		return skip("no swims")
	}

	career = s.dedupeRows(ctx, career)
	if len(career.Swims) == 0 {
		return skip("all rows duplicate")
	}

	career = events.NormalizeCareer(career)
	countParseFailures(career)

	res, err := s.classifier.Classify(ctx, career, s.decisions)
	if err != nil {
		// Only context cancellation and decision-set errors reach here,
		// and decisions were validated before the batch.
		s.log.Warn(ctx, "classification failed",
			logger.String("swimmer", entry.SwimmerID), logger.Error(err))
		return skip("classification failed")
	}

	if err := s.store.Add(ctx, res.Swims...); err != nil {
		return skip("store rejected swims")
	}
	if err := s.writePartitions(res); err != nil {
		s.log.Warn(ctx, "partition files not written",
			logger.String("swimmer", entry.SwimmerID), logger.Error(err))
	}

	metrics.RecordSwimmerProcessed()
	metrics.RecordClassifyDuration(time.Since(started).Seconds())
	for label, n := range res.Counts {
		metrics.RecordSwimsClassified(string(label), n)
	}

	return swimmerOutcome{
		result: ItemResult{
			SwimmerID: entry.SwimmerID,
			Status:    StatusProcessed,
			Official:  len(res.Official),
			Excluded:  len(res.Excluded),
		},
		counts: res.Counts,
	}
}

// dedupeRows drops rows whose fingerprint was already ingested, e.g.
// when a re-import delivers overlapping files.
func (s *Service) dedupeRows(ctx context.Context, career model.Career) model.Career {
	kept := career.Swims[:0]
	for _, swim := range career.Swims {
		if s.deduper.SeenAndRecord(ctx, swim.Fingerprint()) {
			metrics.RecordSwimDuplicate()
			continue
		}
		metrics.RecordSwimIngested()
		kept = append(kept, swim)
	}
	career.Swims = kept
	return career
}

// recordItem folds one swimmer outcome into the summary. Caller holds
// the summary lock.
func (s *Service) recordItem(summary *Summary, item ItemResult, counts map[model.Label]int) {
	summary.Items = append(summary.Items, item)
	switch item.Status {
	case StatusProcessed:
		summary.Processed++
		summary.Official += item.Official
		summary.Excluded += item.Excluded
		for label, n := range counts {
			summary.ByLabel[label] += n
		}
	default:
		summary.Skipped++
	}
}

// countParseFailures feeds normalizer degradations into metrics. The
// swims stay in the batch; they are just invisible to ranking and
// window logic.
func countParseFailures(career model.Career) {
	for _, swim := range career.Swims {
		if swim.EventCode == "" {
			metrics.RecordParseFailure("event")
		}
		if math.IsInf(swim.Seconds, 1) {
			metrics.RecordParseFailure("time")
		}
		if swim.DateRaw != "" && !swim.HasDate() {
			metrics.RecordParseFailure("date")
		}
	}
}

func (s *Service) newProgressBar(total int) *progressbar.ProgressBar {
	if s.progressOut == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(s.progressOut),
		progressbar.OptionSetDescription("classifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
