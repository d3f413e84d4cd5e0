package preprocess

// Worker configuration constants.
const (
	defaultWorkers = 4
)

// Failure reasons reported to metrics.
const (
	reasonEmptyInput      = "empty_input"
	reasonMalformedRecord = "malformed_record"
	reasonIO              = "io"
)
