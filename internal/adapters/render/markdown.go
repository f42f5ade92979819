// Package render writes the record-book reports as markdown files. It is
// thin formatting over aggregator output; all ranking decisions happen
// upstream.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/laneline/swimrecords/internal/domain/events"
	"github.com/laneline/swimrecords/internal/domain/model"
	"github.com/laneline/swimrecords/internal/domain/records"
)

// Meet names longer than this are truncated to keep tables readable.
const maxMeetWidth = 45

// Markdown renders record books for one team.
type Markdown struct {
	teamName    string
	genderTitle string // e.g. "Boys" or "Girls"; empty for combined books
	now         func() time.Time
}

// NewMarkdown creates a renderer titled with teamName.
func NewMarkdown(teamName string, opts ...Option) *Markdown {
	m := &Markdown{
		teamName: teamName,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// flag returns the legend marker for entries produced by non-official
// swims, so reports can visually flag records set while unattached.
func flag(label model.Label) string {
	switch label {
	case model.Official, "":
		return ""
	case model.Probationary:
		return " ‡"
	default:
		return " †"
	}
}

func (m *Markdown) legend(w io.Writer) {
	fmt.Fprintf(w, "**Legend:**\n")
	fmt.Fprintf(w, "- ‡ = Probationary period (before joining team)\n")
	fmt.Fprintf(w, "- † = Other included unattached swim\n\n")
	fmt.Fprintf(w, "---\n\n")
}

func (m *Markdown) header(w io.Writer, subtitle string) {
	if m.genderTitle != "" {
		subtitle = m.genderTitle + " " + subtitle
	}
	fmt.Fprintf(w, "# %s\n", m.teamName)
	fmt.Fprintf(w, "## %s\n\n", subtitle)
	fmt.Fprintf(w, "**Generated:** %s\n\n", m.now().Format("January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(w, "---\n\n")
}

func truncateMeet(meet string, width int) string {
	if len(meet) <= width {
		return meet
	}
	return meet[:width-3] + "..."
}

// Records writes the per-course record book: one table per catalogue
// event, one row per age group. Empty buckets render as em-dash rows so
// the book's shape is stable as data fills in.
func (m *Markdown) Records(w io.Writer, best map[string]map[string]records.Entry, course string) {
	m.header(w, fmt.Sprintf("Team Records - %s (%s)", events.CourseName(course), strings.ToUpper(course)))
	m.legend(w)

	for _, code := range events.Catalogue(course) {
		fmt.Fprintf(w, "### %s\n\n", events.FormatEventName(code))
		fmt.Fprintf(w, "| Age Group | Time | Athlete | Age | Date | Meet |\n")
		fmt.Fprintf(w, "|-----------|------|---------|-----|------|------|\n")

		for _, ageGroup := range events.AgeGroups {
			entry, ok := best[code][ageGroup]
			if !ok {
				fmt.Fprintf(w, "| %s | — | — | — | — | — |\n", ageGroup)
				continue
			}
			fmt.Fprintf(w, "| %s | %s | %s%s | %s | %s | %s |\n",
				ageGroup, entry.Time, entry.Swimmer, flag(entry.Label),
				entry.Age, entry.Date, truncateMeet(entry.Meet, maxMeetWidth))
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "---\n\n*Generated: %s*\n", m.now().Format("January 2, 2006 at 3:04 PM"))
}

// TopN writes the all-time top-N list for one event.
func (m *Markdown) TopN(w io.Writer, top map[string][]records.Entry, course, code string) {
	entries := top[code]
	m.header(w, fmt.Sprintf("%s - All-Time Top %d\n### %s (%s)",
		events.FormatEventName(code), len(entries), events.CourseName(course), strings.ToUpper(course)))
	m.legend(w)

	if len(entries) == 0 {
		fmt.Fprintf(w, "*No times recorded for this event.*\n")
		return
	}

	fmt.Fprintf(w, "| Rank | Time | Athlete | Age | Date | Meet |\n")
	fmt.Fprintf(w, "|------|------|---------|-----|------|------|\n")
	for _, entry := range entries {
		fmt.Fprintf(w, "| %d | %s | %s%s | %s | %s | %s |\n",
			entry.Rank, entry.Time, entry.Swimmer, flag(entry.Label),
			entry.Age, entry.Date, truncateMeet(entry.Meet, maxMeetWidth))
	}
	fmt.Fprintf(w, "\n---\n\n*Generated: %s*\n", m.now().Format("January 2, 2006 at 3:04 PM"))
}

// Annual writes the season summary: every record broken during the
// season in chronological order, the standing-records table grouped by
// age group, and summary statistics.
func (m *Markdown) Annual(w io.Writer, newRecords []records.Entry, season int, course string) {
	m.header(w, fmt.Sprintf("%d-%d Season Records Summary", season-1, season))
	fmt.Fprintf(w, "**Season:** calendar year %d\n", season)
	fmt.Fprintf(w, "**Total Records Broken:** %d\n\n---\n\n", len(newRecords))
	m.legend(w)

	fmt.Fprintf(w, "## Records Broken in Chronological Order\n\n")
	for i, rec := range newRecords {
		fmt.Fprintf(w, "### %d. %s - %s %s %s\n\n",
			i+1, rec.Date, strings.ToUpper(course), rec.AgeGroup, events.FormatEventName(rec.EventCode))
		fmt.Fprintf(w, "**Swimmer:** %s%s\n", rec.Swimmer, flag(rec.Label))
		fmt.Fprintf(w, "**Time:** %s\n", rec.Time)
		fmt.Fprintf(w, "**Meet:** %s\n\n", truncateMeet(rec.Meet, maxMeetWidth))
	}
	fmt.Fprintf(w, "---\n\n")

	fmt.Fprintf(w, "## Standing Records Set in the Season\n\n")
	fmt.Fprintf(w, "| Age Group | Event | Time | Athlete | Date | Meet |\n")
	fmt.Fprintf(w, "|-----------|-------|------|---------|------|------|\n")
	for _, ageGroup := range events.AgeGroups {
		for _, rec := range newRecords {
			if rec.AgeGroup != ageGroup {
				continue
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s%s | %s | %s |\n",
				ageGroup, events.FormatEventName(rec.EventCode), rec.Time,
				rec.Swimmer, flag(rec.Label), rec.Date, truncateMeet(rec.Meet, maxMeetWidth))
		}
	}
	fmt.Fprintf(w, "\n---\n\n")

	m.annualStats(w, newRecords)
}

// annualStats writes the summary block: totals and the top record
// breakers of the season.
func (m *Markdown) annualStats(w io.Writer, newRecords []records.Entry) {
	fmt.Fprintf(w, "## Summary Statistics\n\n")
	fmt.Fprintf(w, "- **Total records broken:** %d\n\n", len(newRecords))

	counts := make(map[string]int)
	var names []string
	for _, rec := range newRecords {
		if counts[rec.Swimmer] == 0 {
			names = append(names, rec.Swimmer)
		}
		counts[rec.Swimmer]++
	}
	// Highest count first; ties in first-appearance order.
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	fmt.Fprintf(w, "**Top Record Breakers:**\n")
	for _, name := range names {
		plural := "s"
		if counts[name] == 1 {
			plural = ""
		}
		fmt.Fprintf(w, "- %s: %d record%s\n", name, counts[name], plural)
	}
}
