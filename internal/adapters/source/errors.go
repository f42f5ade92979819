package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrUnknownSource  = errors.New("unknown data source")
	ErrMissingColumns = errors.New("source file missing required columns")
)
