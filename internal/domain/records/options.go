package records

import "strings"

// Default ranking depth for top-N lists.
const defaultTopN = 10

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithTopN sets the ranking depth for TopN lists.
func WithTopN(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.topN = n
		}
	}
}

// WithGender restricts aggregation to swims of one gender code,
// e.g. "M" or "F". Empty keeps every swim.
func WithGender(gender string) Option {
	return func(a *Aggregator) {
		a.gender = strings.TrimSpace(gender)
	}
}
