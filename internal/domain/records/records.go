// Package records computes best-time and top-N rankings from classified
// official swims.
//
// Numeric semantics: lower seconds is always better, +Inf (unparsable
// time) is dropped before ranking, and each swimmer counts at most once
// per bucket — their fastest swim. Ties keep original input order (stable
// sort), so repeat runs over the same input produce identical rankings.
package records

import (
	"math"
	"sort"
	"strings"

	"github.com/laneline/swimrecords/internal/domain/events"
	"github.com/laneline/swimrecords/internal/domain/model"
)

// AllTime is the age-group context used for rankings that span all ages.
const AllTime = "All-Time"

// Entry is one derived record row: the best (or Nth-best) swim for a
// slice of the record book. Entries are pure projections of the
// originating swim's display fields and are never written back.
type Entry struct {
	EventCode string
	AgeGroup  string // age-group context, or AllTime for top-N lists
	Rank      int    // 1-based rank for top-N lists; 1 for best-time entries
	Swimmer   string
	Time      string
	Seconds   float64
	Age       string
	Date      string
	Meet      string
	Label     model.Label // classification label that produced the swim
}

// Aggregator computes record books over official swims for one course's
// event catalogue, optionally restricted to one gender.
type Aggregator struct {
	topN   int
	gender string
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{topN: defaultTopN}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BestTimes computes the fastest swim for every (event, age-group) pair
// of the course catalogue. The "Open" age group aggregates across all
// ages. Buckets with no rankable swim are absent from the result.
func (a *Aggregator) BestTimes(swims []model.ClassifiedSwim, course string) map[string]map[string]Entry {
	byEvent := bucketByEvent(a.byGender(swims), course)
	out := make(map[string]map[string]Entry)

	for _, code := range events.Catalogue(course) {
		eventSwims := byEvent[code]
		if len(eventSwims) == 0 {
			continue
		}
		for _, ageGroup := range events.AgeGroups {
			candidates := eventSwims
			if ageGroup != "Open" {
				candidates = filterSwims(eventSwims, func(cs model.ClassifiedSwim) bool {
					return cs.Swim.AgeGroup == ageGroup
				})
			}
			ranked := rankDistinctSwimmers(candidates)
			if len(ranked) == 0 {
				continue
			}
			if out[code] == nil {
				out[code] = make(map[string]Entry)
			}
			e := toEntry(ranked[0], code, ageGroup)
			e.Rank = 1
			out[code][ageGroup] = e
		}
	}
	return out
}

// TopN computes the N fastest distinct-swimmer swims per event, across
// all age groups, ranked ascending by seconds.
func (a *Aggregator) TopN(swims []model.ClassifiedSwim, course string) map[string][]Entry {
	byEvent := bucketByEvent(a.byGender(swims), course)
	out := make(map[string][]Entry)

	for _, code := range events.Catalogue(course) {
		ranked := rankDistinctSwimmers(byEvent[code])
		if len(ranked) == 0 {
			continue
		}
		if len(ranked) > a.topN {
			ranked = ranked[:a.topN]
		}
		entries := make([]Entry, 0, len(ranked))
		for i, cs := range ranked {
			e := toEntry(cs, code, AllTime)
			e.Rank = i + 1
			entries = append(entries, e)
		}
		out[code] = entries
	}
	return out
}

// SeasonBests computes best times restricted to swims dated within one
// calendar year. Swims without a parseable date never qualify.
func (a *Aggregator) SeasonBests(swims []model.ClassifiedSwim, course string, year int) map[string]map[string]Entry {
	season := filterSwims(swims, func(cs model.ClassifiedSwim) bool {
		return cs.Swim.HasDate() && cs.Swim.Date.Year() == year
	})
	return a.BestTimes(season, course)
}

// NewRecords flags season entries that equal-or-beat the all-time entry
// for their bucket (or fill a bucket with no prior record), sorted
// chronologically by swim date for narrative reporting.
func (a *Aggregator) NewRecords(season, allTime map[string]map[string]Entry) []Entry {
	var out []Entry
	for code, byAge := range season {
		for ageGroup, entry := range byAge {
			standing, ok := allTime[code][ageGroup]
			if !ok || entry.Seconds <= standing.Seconds {
				out = append(out, entry)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].EventCode != out[j].EventCode {
			return out[i].EventCode < out[j].EventCode
		}
		return out[i].AgeGroup < out[j].AgeGroup
	})
	return out
}

// byGender restricts swims to the configured gender. Swims without
// gender information cannot prove membership and are dropped when a
// filter is active.
func (a *Aggregator) byGender(swims []model.ClassifiedSwim) []model.ClassifiedSwim {
	if a.gender == "" {
		return swims
	}
	return filterSwims(swims, func(cs model.ClassifiedSwim) bool {
		return strings.EqualFold(cs.Swim.Gender, a.gender)
	})
}

// bucketByEvent groups rankable swims of one course by event code.
// Unparsable events (empty code), other courses and infinite times are
// dropped here, once, so every ranking below sees clean input.
func bucketByEvent(swims []model.ClassifiedSwim, course string) map[string][]model.ClassifiedSwim {
	out := make(map[string][]model.ClassifiedSwim)
	for _, cs := range swims {
		if cs.Swim.EventCode == "" || cs.Swim.Course != strings.ToLower(course) {
			continue
		}
		if math.IsInf(cs.Swim.Seconds, 1) {
			continue
		}
		out[cs.Swim.EventCode] = append(out[cs.Swim.EventCode], cs)
	}
	return out
}

// rankDistinctSwimmers sorts ascending by seconds (stable, so ties keep
// input order) and keeps each swimmer's first — fastest — swim.
func rankDistinctSwimmers(swims []model.ClassifiedSwim) []model.ClassifiedSwim {
	sorted := make([]model.ClassifiedSwim, len(swims))
	copy(sorted, swims)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Swim.Seconds < sorted[j].Swim.Seconds
	})

	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, cs := range sorted {
		name := cs.Swim.SwimmerName
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, cs)
	}
	return out
}

func filterSwims(swims []model.ClassifiedSwim, keep func(model.ClassifiedSwim) bool) []model.ClassifiedSwim {
	var out []model.ClassifiedSwim
	for _, cs := range swims {
		if keep(cs) {
			out = append(out, cs)
		}
	}
	return out
}

func toEntry(cs model.ClassifiedSwim, code, ageGroup string) Entry {
	return Entry{
		EventCode: code,
		AgeGroup:  ageGroup,
		Swimmer:   cs.Swim.SwimmerName,
		Time:      cs.Swim.Time,
		Seconds:   cs.Swim.Seconds,
		Age:       cs.Swim.Age,
		Date:      entryDate(cs.Swim),
		Meet:      cs.Swim.Meet,
		Label:     cs.Label,
	}
}

// entryDate prefers the parsed date in ISO form so chronological sorting
// of entries is lexical; falls back to the raw source text.
func entryDate(s model.Swim) string {
	if s.HasDate() {
		return s.Date.Format("2006-01-02")
	}
	return s.DateRaw
}
