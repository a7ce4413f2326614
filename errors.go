package supernal

import "errors"

// Project errors.
var (
	// ErrNotProject indicates the directory has no .supernal configuration.
	ErrNotProject = errors.New("not a supernal project (missing .supernal directory)")
)
