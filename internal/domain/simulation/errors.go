package simulation

import (
	"errors"
	"fmt"
)

// Sentinel kinds for raw record errors.
var (
	ErrMalformedRecord = errors.New("malformed hand record")
	ErrNotArray        = errors.New("result file is not a JSON array")
	ErrMissingNet      = errors.New("missing net result")
	ErrNotNumeric      = errors.New("value is not numeric")
	ErrNonFinite       = errors.New("value is not finite")
	ErrNonPositiveBet  = errors.New("bet must be positive")
)

// MalformedRecordError reports the record that broke aggregation. Index is
// -1 when the file as a whole could not be read as an array.
type MalformedRecordError struct {
	Index int
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("%s: %v", ErrMalformedRecord, e.Err)
	case e.Field == "":
		return fmt.Sprintf("%s at index %d: %v", ErrMalformedRecord, e.Index, e.Err)
	default:
		return fmt.Sprintf("%s at index %d (%s): %v", ErrMalformedRecord, e.Index, e.Field, e.Err)
	}
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Is makes every MalformedRecordError match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }
