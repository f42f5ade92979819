// Package events normalizes free-text event descriptors, swim times, ages
// and dates into the canonical forms the classifier and aggregator consume.
//
// Conventions:
//   - Parse failures never return errors; they degrade to sentinel values
//     (null parse, +Inf seconds, zero date) so a bad row is skipped from
//     ranking and window logic without aborting a batch.
package events

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Courses recognized by the record books.
const (
	CourseSCY = "scy" // short course yards
	CourseLCM = "lcm" // long course meters
	CourseSCM = "scm" // short course meters
)

// AgeGroups is the governing age-group ladder, in report order.
var AgeGroups = []string{"10U", "11-12", "13-14", "15-16", "17-18", "Open"}

// SCYEvents is the short-course-yards record catalogue, in report order.
var SCYEvents = []string{
	"50-free", "100-free", "200-free", "500-free", "1000-free", "1650-free",
	"50-back", "100-back", "200-back",
	"50-breast", "100-breast", "200-breast",
	"50-fly", "100-fly", "200-fly",
	"100-im", "200-im", "400-im",
}

// LCMEvents is the long-course-meters record catalogue, in report order.
var LCMEvents = []string{
	"50-free", "100-free", "200-free", "400-free", "800-free", "1500-free",
	"50-back", "100-back", "200-back",
	"50-breast", "100-breast", "200-breast",
	"50-fly", "100-fly", "200-fly",
	"200-im", "400-im",
}

// SCMEvents mirrors the LCM catalogue.
var SCMEvents = LCMEvents

// Catalogue returns the event list for a course, or nil for an unknown
// course.
func Catalogue(course string) []string {
	switch strings.ToLower(course) {
	case CourseSCY:
		return SCYEvents
	case CourseLCM:
		return LCMEvents
	case CourseSCM:
		return SCMEvents
	default:
		return nil
	}
}

// CourseName returns the display name for a course code.
func CourseName(course string) string {
	switch strings.ToLower(course) {
	case CourseSCY:
		return "Short Course Yards"
	case CourseLCM:
		return "Long Course Meters"
	case CourseSCM:
		return "Short Course Meters"
	default:
		return strings.ToUpper(course)
	}
}

// strokeCodes maps source stroke tokens to canonical stroke names.
var strokeCodes = map[string]string{
	"FR":     "free",
	"FREE":   "free",
	"BK":     "back",
	"BACK":   "back",
	"BR":     "breast",
	"BREAST": "breast",
	"FL":     "fly",
	"FLY":    "fly",
	"IM":     "im",
}

// sourceTokens maps canonical stroke names back to the token sources
// emit most often.
var sourceTokens = map[string]string{
	"free":   "FR",
	"back":   "BK",
	"breast": "BR",
	"fly":    "FL",
	"im":     "IM",
}

// strokeNames maps canonical stroke names to display names.
var strokeNames = map[string]string{
	"free":   "Freestyle",
	"back":   "Backstroke",
	"breast": "Breaststroke",
	"fly":    "Butterfly",
	"im":     "Individual Medley",
}

// ParseEvent extracts (distance, stroke, course) from a raw event string
// such as "50 FR SCY" or "100 BACK LCM". ok is false on any malformed
// input: too few tokens, non-numeric distance, unknown stroke token, or
// unknown course. A null parse marks the swim unusable for ranking; it is
// never an error.
func ParseEvent(raw string) (distance, stroke, course string, ok bool) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) < 3 {
		return "", "", "", false
	}

	distance = parts[0]
	if _, err := strconv.Atoi(distance); err != nil {
		return "", "", "", false
	}

	stroke, ok = strokeCodes[strings.ToUpper(parts[1])]
	if !ok {
		return "", "", "", false
	}

	course = strings.ToLower(parts[2])
	switch course {
	case CourseSCY, CourseLCM, CourseSCM:
	default:
		return "", "", "", false
	}

	return distance, stroke, course, true
}

// EventCode builds the normalized event code, e.g. ("50", "free") -> "50-free".
func EventCode(distance, stroke string) string {
	return distance + "-" + stroke
}

// SourceEvent renders an event code in the raw form ParseEvent accepts,
// e.g. ("50-free", "scy") -> "50 FR SCY". Codes outside the canonical
// shape pass through unchanged.
func SourceEvent(code, course string) string {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return code
	}
	token, ok := sourceTokens[strings.ToLower(parts[1])]
	if !ok {
		return code
	}
	return parts[0] + " " + token + " " + strings.ToUpper(course)
}

// FormatEventName converts an event code to its display name, e.g.
// "200-im" -> "200 Individual Medley". Unrecognized codes pass through.
func FormatEventName(code string) string {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return code
	}
	name, ok := strokeNames[strings.ToLower(parts[1])]
	if !ok {
		name = strings.Title(parts[1]) //nolint:staticcheck // stroke tokens are ASCII
	}
	return parts[0] + " " + name
}

// ParseSwimTime converts a formatted time string to seconds. Accepted
// forms are SS.hh, MM:SS.hh and HH:MM:SS.hh. Anything else (empty,
// non-numeric, too many segments) maps to +Inf, the "never ranks"
// sentinel.
func ParseSwimTime(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.Inf(1)
	}

	parts := strings.Split(s, ":")
	var mult float64 = 1
	var total float64
	for i := len(parts) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil || v < 0 {
			return math.Inf(1)
		}
		total += v * mult
		mult *= 60
	}
	if len(parts) > 3 {
		return math.Inf(1)
	}
	return total
}

// FormatSeconds renders seconds in the shortest conventional form:
// "21.45", "1:42.15" or "1:02:03.50". Non-finite input renders as "—".
func FormatSeconds(sec float64) string {
	if math.IsInf(sec, 0) || math.IsNaN(sec) || sec < 0 {
		return "—"
	}
	whole := int(sec)
	hundredths := int(math.Round((sec - float64(whole)) * 100))
	if hundredths == 100 {
		whole++
		hundredths = 0
	}
	h := whole / 3600
	m := (whole % 3600) / 60
	s := whole % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, hundredths)
	case m > 0:
		return fmt.Sprintf("%d:%02d.%02d", m, s, hundredths)
	default:
		return fmt.Sprintf("%d.%02d", s, hundredths)
	}
}

// AgeGroup buckets a raw age string into the governing bands. Any value
// that does not parse as a number maps to "Open".
func AgeGroup(raw string) string {
	age, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "Open"
	}
	switch n := int(age); {
	case n <= 10:
		return "10U"
	case n <= 12:
		return "11-12"
	case n <= 14:
		return "13-14"
	case n <= 16:
		return "15-16"
	case n <= 18:
		return "17-18"
	default:
		return "Open"
	}
}

// dateLayouts are the swim-date formats tolerated from sources, tried in
// order.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseDate parses a swim date in any tolerated layout. ok is false (and
// the time zero) when no layout matches; callers must treat such swims as
// outside every date-bounded window.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
