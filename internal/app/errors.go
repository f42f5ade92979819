package app

import "errors"

// Sentinel kinds for batch service errors.
var (
	ErrNoSource     = errors.New("no data source configured")
	ErrNoClassifier = errors.New("no classifier configured")
)
