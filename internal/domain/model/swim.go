// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"strings"
	"time"
)

// Swim represents one competitive result for one swimmer.
// Fields are immutable once the normalizer has filled the derived columns;
// classification annotates swims through ClassifiedSwim, never in place.
type Swim struct {
	SwimmerID   string    // source-specific unique id (PersonKey, careerid, ...)
	SwimmerName string    // display name
	Event       string    // raw event text, e.g. "50 FR SCY"
	Distance    string    // parsed distance, e.g. "50"; empty on null parse
	Stroke      string    // free, back, breast, fly, im; empty on null parse
	Course      string    // scy, lcm, scm; empty on null parse
	EventCode   string    // normalized code, e.g. "50-free"; empty on null parse
	Time        string    // formatted time string, e.g. "21.45" or "1:42.15"
	Seconds     float64   // time in seconds, +Inf when Time is unparsable
	Age         string    // raw age text at swim
	AgeGroup    string    // banded age group, "10U" .. "Open"
	Date        time.Time // parsed swim date; zero when DateRaw is unparsable
	DateRaw     string    // swim date as delivered by the source
	Meet        string    // meet name
	Team        string    // raw team/affiliation text
	Gender      string    // "M" or "F"; optional
}

// HasDate reports whether the swim carries a parseable date.
func (s Swim) HasDate() bool { return !s.Date.IsZero() }

// Fingerprint identifies a result row for duplicate detection across
// re-imports. Two rows with the same swimmer, event, date and time are
// the same physical swim regardless of which file delivered them.
func (s Swim) Fingerprint() string {
	return strings.Join([]string{s.SwimmerID, s.Event, s.DateRaw, s.Time}, "|")
}

// Career is one swimmer's full swim history, ordered by swim date
// ascending. The classifier depends on this ordering: decisions for one
// swim look only at swims earlier in the same sequence.
type Career struct {
	SwimmerID   string
	SwimmerName string
	Swims       []Swim
}

// Sort orders the career chronologically. Swims without a parseable date
// keep their relative input position at the front so they can never claim
// a transfer window they cannot prove.
func (c *Career) Sort() {
	sort.SliceStable(c.Swims, func(i, j int) bool {
		return c.Swims[i].Date.Before(c.Swims[j].Date)
	})
}

// Label is the affiliation category a swim is classified under.
type Label string

// Classification labels.
const (
	Official       Label = "Official"       // club-affiliated swim
	HighSchool     Label = "HighSchool"     // high school team swim
	Probationary   Label = "Probationary"   // unattached within transfer window
	College        Label = "College"        // unattached during college years
	MiscUnattached Label = "MiscUnattached" // other unattached swim
	OtherClub      Label = "OtherClub"      // swam for a different club
	Unknown        Label = "Unknown"        // no affiliation information
)

// AmbiguousLabels are the categories whose include/exclude treatment is a
// per-team policy choice rather than a fixed rule.
var AmbiguousLabels = []Label{HighSchool, Probationary, College, MiscUnattached}

// Decision is the include/exclude outcome applied to a classified swim.
type Decision string

// Decisions.
const (
	Include Decision = "include"
	Exclude Decision = "exclude"
)

// Valid reports whether d is one of the two recognized decisions.
func (d Decision) Valid() bool { return d == Include || d == Exclude }

// ClassifiedSwim annotates a swim with its classification outcome.
type ClassifiedSwim struct {
	Swim      Swim
	Label     Label
	Decision  Decision
	Rationale string
	// RuleDays is the transfer window length applied for probationary
	// swims (60 or 120); zero for every other label.
	RuleDays int
}
