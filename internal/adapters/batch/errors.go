package batch

import "errors"

// ErrJobPanicked is returned in a Result when the job panicked.
var ErrJobPanicked = errors.New("job panicked")
