package preprocess

import "errors"

// Sentinel errors for preprocessing runs.
var (
	ErrInvalidConfig     = errors.New("invalid preprocess config")
	ErrNoResults         = errors.New("no simulation result files found")
	ErrStrategiesFailed  = errors.New("one or more strategies failed")
	ErrMissingResultFile = errors.New("result file not found")
)
