package classify

import "errors"

// Sentinel kinds for classification errors.
var (
	ErrIncompleteDecisions = errors.New("incomplete decision set")
	ErrNoDecisionFile      = errors.New("decision file not found")
)
