package classify

import (
	"fmt"

	"github.com/laneline/swimrecords/internal/domain/model"
)

// DecisionSet maps each ambiguous classification label to the
// include/exclude treatment chosen for this team's record book. Official
// swims are always included and OtherClub/Unknown always excluded; only
// the four ambiguous categories are policy.
type DecisionSet struct {
	HighSchool     model.Decision `json:"high_school"`
	Probationary   model.Decision `json:"probationary"`
	College        model.Decision `json:"college"`
	MiscUnattached model.Decision `json:"misc_unattached"`
}

// For returns the decision configured for an ambiguous label. Labels with
// fixed treatment fall back to exclude; callers never route them here.
func (d DecisionSet) For(label model.Label) model.Decision {
	switch label {
	case model.HighSchool:
		return d.HighSchool
	case model.Probationary:
		return d.Probationary
	case model.College:
		return d.College
	case model.MiscUnattached:
		return d.MiscUnattached
	default:
		return model.Exclude
	}
}

// With returns a copy of d with one label's decision replaced. Unknown
// labels leave the set unchanged.
func (d DecisionSet) With(label model.Label, decision model.Decision) DecisionSet {
	switch label {
	case model.HighSchool:
		d.HighSchool = decision
	case model.Probationary:
		d.Probationary = decision
	case model.College:
		d.College = decision
	case model.MiscUnattached:
		d.MiscUnattached = decision
	}
	return d
}

// Validate checks that every ambiguous category has a recognized
// decision. Classification must not start on an incomplete set; this is
// the one structural precondition of a batch.
func (d DecisionSet) Validate() error {
	for _, label := range model.AmbiguousLabels {
		if !d.For(label).Valid() {
			return fmt.Errorf("%w: no decision for category %s", ErrIncompleteDecisions, label)
		}
	}
	return nil
}
