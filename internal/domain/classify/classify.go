// Package classify implements the unattached-swim classification engine.
//
// Given one swimmer's chronological career, a configured set of team
// names and a decision set for the ambiguous categories, the classifier
// walks the career once, assigns each swim an affiliation label, and
// partitions the career into official (include) and excluded swims.
//
// The temporal rule it models: a swimmer who was representing another
// program immediately before transferring carries a probation clock, so
// unattached swims inside the transfer window before the first team swim
// are attributed to the transfer in progress. The walk keeps a single
// flag — has the swimmer been seen with another club before joining —
// instead of looking ahead.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/laneline/swimrecords/internal/domain/model"
)

// Transfer-rule policy defaults. The governing rule shortened the
// probation window for swims on or after 2023-01-01.
const (
	defaultPreCutoffDays  = 120
	defaultPostCutoffDays = 60
)

var defaultRuleCutoff = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// highSchoolMarkers are affiliation substrings identifying high school
// teams, matched case-insensitively.
var highSchoolMarkers = []string{"high school", "hs-", " hs "}

// TransferPolicy is the versioned probation-window rule. The window
// length is selected by the swim's own date relative to Cutoff, not by
// the transfer date.
type TransferPolicy struct {
	Cutoff         time.Time
	PreCutoffDays  int
	PostCutoffDays int
}

// DefaultTransferPolicy returns the governing rule as currently written.
func DefaultTransferPolicy() TransferPolicy {
	return TransferPolicy{
		Cutoff:         defaultRuleCutoff,
		PreCutoffDays:  defaultPreCutoffDays,
		PostCutoffDays: defaultPostCutoffDays,
	}
}

// WindowDays returns the probation window length applicable to a swim
// dated swimDate.
func (p TransferPolicy) WindowDays(swimDate time.Time) int {
	if !swimDate.Before(p.Cutoff) {
		return p.PostCutoffDays
	}
	return p.PreCutoffDays
}

// InWindow reports whether swimDate falls inside the probation window
// ending at firstTeamDate: [firstTeamDate - days, firstTeamDate), left
// inclusive, right exclusive. A zero swimDate never matches.
func (p TransferPolicy) InWindow(swimDate, firstTeamDate time.Time) bool {
	if swimDate.IsZero() || firstTeamDate.IsZero() {
		return false
	}
	start := firstTeamDate.AddDate(0, 0, -p.WindowDays(swimDate))
	return !swimDate.Before(start) && swimDate.Before(firstTeamDate)
}

// Result is the outcome of classifying one career.
type Result struct {
	SwimmerID   string
	SwimmerName string
	// All swims annotated, in career (chronological) order.
	Swims []model.ClassifiedSwim
	// Official and Excluded partition the career: every swim appears in
	// exactly one of the two, preserving order.
	Official []model.ClassifiedSwim
	Excluded []model.ClassifiedSwim
	// Counts of swims per label.
	Counts map[model.Label]int
}

// Classifier labels careers against one team's eligibility rules.
type Classifier struct {
	teamNames []string
	policy    TransferPolicy
}

// New creates a Classifier for the given team-name substrings. A swim is
// a team swim when its affiliation text contains any of the names,
// case-insensitively.
func New(teamNames []string, opts ...Option) *Classifier {
	c := &Classifier{
		policy: DefaultTransferPolicy(),
	}
	for _, name := range teamNames {
		if n := strings.TrimSpace(name); n != "" {
			c.teamNames = append(c.teamNames, strings.ToLower(n))
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify walks career once in chronological order and labels every
// swim, then applies decisions to split the career into official and
// excluded partitions. The career must already be normalized and sorted;
// decisions must be complete (see DecisionSet.Validate) — an incomplete
// set is a configuration error surfaced before any batch starts.
func (c *Classifier) Classify(ctx context.Context, career model.Career, decisions DecisionSet) (Result, error) {
	if err := decisions.Validate(); err != nil {
		return Result{}, fmt.Errorf("classify %s: %w", career.SwimmerID, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("classify %s: %w", career.SwimmerID, err)
	}

	res := Result{
		SwimmerID:   career.SwimmerID,
		SwimmerName: career.SwimmerName,
		Counts:      make(map[model.Label]int),
	}

	firstTeamIdx, firstTeamDate := c.firstTeamSwim(career.Swims)

	seenOtherClub := false
	for i, swim := range career.Swims {
		cs := c.classifyOne(swim, firstTeamDate, seenOtherClub, decisions)

		// The other-club flag transitions exactly once per rule: it only
		// matters for swims before the swimmer's first team swim.
		if cs.Label == model.OtherClub && (firstTeamIdx < 0 || i < firstTeamIdx) {
			seenOtherClub = true
		}

		res.Swims = append(res.Swims, cs)
		res.Counts[cs.Label]++
		if cs.Decision == model.Include {
			res.Official = append(res.Official, cs)
		} else {
			res.Excluded = append(res.Excluded, cs)
		}
	}

	return res, nil
}

// firstTeamSwim locates the earliest team swim in chronological order.
// Returns index -1 and a zero date when the swimmer never swims for the
// team; in that case the whole career is classified under pre-team rules.
func (c *Classifier) firstTeamSwim(swims []model.Swim) (int, time.Time) {
	for i, s := range swims {
		if c.isTeamSwim(s.Team) {
			return i, s.Date
		}
	}
	return -1, time.Time{}
}

// classifyOne labels a single swim. Priority between the unattached
// sub-categories is fixed: HighSchool > Probationary > College > Misc.
func (c *Classifier) classifyOne(
	swim model.Swim,
	firstTeamDate time.Time,
	seenOtherClub bool,
	decisions DecisionSet,
) model.ClassifiedSwim {
	cs := model.ClassifiedSwim{Swim: swim}
	team := swim.Team

	switch {
	case c.isTeamSwim(team):
		cs.Label = model.Official
		cs.Decision = model.Include
		cs.Rationale = "club-affiliated swim"

	case isUnattached(team):
		switch {
		case isHighSchool(team):
			cs.Label = model.HighSchool
			cs.Decision = decisions.For(model.HighSchool)
			cs.Rationale = "high school team swim"

		case seenOtherClub && c.policy.InWindow(swim.Date, firstTeamDate):
			days := c.policy.WindowDays(swim.Date)
			cs.Label = model.Probationary
			cs.Decision = decisions.For(model.Probationary)
			cs.Rationale = fmt.Sprintf("probationary swim (%d-day rule)", days)
			cs.RuleDays = days

		case isCollegeAge(swim.Age):
			cs.Label = model.College
			cs.Decision = decisions.For(model.College)
			cs.Rationale = "unattached during college years"

		default:
			cs.Label = model.MiscUnattached
			cs.Decision = decisions.For(model.MiscUnattached)
			cs.Rationale = "misc unattached swim"
		}

	case strings.TrimSpace(team) != "":
		cs.Label = model.OtherClub
		cs.Decision = model.Exclude
		cs.Rationale = "swam for a different club"

	default:
		cs.Label = model.Unknown
		cs.Decision = model.Exclude
		cs.Rationale = "no team information"
	}

	return cs
}

func (c *Classifier) isTeamSwim(team string) bool {
	t := strings.ToLower(team)
	for _, name := range c.teamNames {
		if strings.Contains(t, name) {
			return true
		}
	}
	return false
}

func isUnattached(team string) bool {
	return strings.Contains(strings.ToLower(team), "unattached")
}

func isHighSchool(team string) bool {
	t := strings.ToLower(team)
	for _, marker := range highSchoolMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}

// isCollegeAge reports whether the swimmer was 18-22 at the swim.
func isCollegeAge(rawAge string) bool {
	var age int
	if _, err := fmt.Sscanf(strings.TrimSpace(rawAge), "%d", &age); err != nil {
		return false
	}
	return age >= 18 && age <= 22
}
