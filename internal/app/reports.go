package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/laneline/swimrecords/internal/domain/events"
	"github.com/laneline/swimrecords/internal/domain/model"
	"github.com/laneline/swimrecords/internal/domain/records"
	"github.com/laneline/swimrecords/pkg/logger"
	"github.com/laneline/swimrecords/pkg/metrics"
)

// official returns the stored swims of one course that carry an include
// decision — the only population record books are built from.
func (s *Service) official(ctx context.Context, course string) []model.ClassifiedSwim {
	var out []model.ClassifiedSwim
	for _, cs := range s.store.ByCourse(ctx, course) {
		if cs.Decision == model.Include {
			out = append(out, cs)
		}
	}
	return out
}

// Records computes and writes the best-time record book for one course.
// Returns the computed mapping so callers (and tests) can inspect it.
func (s *Service) Records(ctx context.Context, course string) (map[string]map[string]records.Entry, error) {
	course = strings.ToLower(course)
	best := s.aggregator.BestTimes(s.official(ctx, course), course)
	metrics.UpdateRecordEntries(countEntries(best))

	path := filepath.Join(s.outputDir, "records", course, "records.md")
	if err := s.writeReport(path, func(f *os.File) {
		s.renderer.Records(f, best, course)
	}); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "record book written",
		logger.String("course", course), logger.String("path", path))
	return best, nil
}

// TopN computes and writes the all-time top-N lists for one course, one
// file per catalogue event.
func (s *Service) TopN(ctx context.Context, course string) (map[string][]records.Entry, error) {
	course = strings.ToLower(course)
	top := s.aggregator.TopN(s.official(ctx, course), course)

	n := 0
	for _, entries := range top {
		n += len(entries)
	}
	metrics.UpdateRecordEntries(n)

	for _, code := range events.Catalogue(course) {
		if len(top[code]) == 0 {
			continue
		}
		path := filepath.Join(s.outputDir, "records", course, "top10", code+".md")
		if err := s.writeReport(path, func(f *os.File) {
			s.renderer.TopN(f, top, course, code)
		}); err != nil {
			return nil, err
		}
	}
	s.log.Info(ctx, "top-N lists written",
		logger.String("course", course), logger.Int("events", len(top)))
	return top, nil
}

// Annual computes season bests for one calendar year, flags new standing
// records against the all-time book and writes the season summary.
func (s *Service) Annual(ctx context.Context, course string, season int) ([]records.Entry, error) {
	course = strings.ToLower(course)
	official := s.official(ctx, course)

	allTime := s.aggregator.BestTimes(official, course)
	seasonBests := s.aggregator.SeasonBests(official, course, season)
	newRecords := s.aggregator.NewRecords(seasonBests, allTime)
	metrics.UpdateRecordEntries(len(newRecords))

	path := filepath.Join(s.outputDir, "records", course, fmt.Sprintf("season-%d.md", season))
	if err := s.writeReport(path, func(f *os.File) {
		s.renderer.Annual(f, newRecords, season, course)
	}); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "season summary written",
		logger.String("course", course), logger.Int("season", season),
		logger.Int("new_records", len(newRecords)))
	return newRecords, nil
}

// Status reports store contents for the status subcommand.
type Status struct {
	Swims    int
	Swimmers int
	Official int
	Excluded int
}

// Status summarizes what has been classified so far.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{
		Swims:    s.store.Count(ctx),
		Swimmers: len(s.store.Swimmers(ctx)),
	}
	for _, cs := range s.store.All(ctx) {
		if cs.Decision == model.Include {
			st.Official++
		} else {
			st.Excluded++
		}
	}
	return st
}

func (s *Service) writeReport(path string, render func(*os.File)) error {
	if err := os.MkdirAll(filepath.Dir(path), directoryPermission); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	defer f.Close()
	render(f)
	metrics.RecordReportWritten()
	return nil
}

func countEntries(best map[string]map[string]records.Entry) int {
	n := 0
	for _, byAge := range best {
		n += len(byAge)
	}
	return n
}
