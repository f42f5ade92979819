package events

import (
	"github.com/laneline/swimrecords/internal/domain/model"
)

// Normalize fills the derived columns of a swim from its raw fields:
// event triple and code, seconds, age group and parsed date. The input is
// returned by value; raw fields are never modified.
func Normalize(s model.Swim) model.Swim {
	if distance, stroke, course, ok := ParseEvent(s.Event); ok {
		s.Distance = distance
		s.Stroke = stroke
		s.Course = course
		s.EventCode = EventCode(distance, stroke)
	}
	s.Seconds = ParseSwimTime(s.Time)
	s.AgeGroup = AgeGroup(s.Age)
	if d, ok := ParseDate(s.DateRaw); ok {
		s.Date = d
	}
	return s
}

// NormalizeCareer normalizes every swim in a career and sorts it
// chronologically, the ordering the classifier requires.
func NormalizeCareer(c model.Career) model.Career {
	for i := range c.Swims {
		c.Swims[i] = Normalize(c.Swims[i])
	}
	c.Sort()
	return c
}
