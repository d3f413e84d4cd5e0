package strategy

import (
	"fmt"
	"strconv"
	"strings"
)

// File naming conventions shared by the preprocessor and the registry.
const (
	ResultFileSuffix     = "_results.json"
	SummaryFileSuffix    = "_summary.json"
	FixedThresholdPrefix = "fixed-threshold-"
)

// ValidateKey accepts lower-case words of letters and digits joined by single
// dashes, e.g. "card-counter" or "fixed-threshold-16".
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.HasPrefix(key, "-") || strings.HasSuffix(key, "-") || strings.Contains(key, "--") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// KeyFromResultFile maps "card_counter_results.json" to "card-counter".
func KeyFromResultFile(name string) (string, error) {
	base, ok := strings.CutSuffix(name, ResultFileSuffix)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a result file", ErrInvalidKey, name)
	}
	key := strings.ReplaceAll(base, "_", "-")
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// ResultFileName is the inverse of KeyFromResultFile.
func ResultFileName(key string) string {
	return strings.ReplaceAll(key, "-", "_") + ResultFileSuffix
}

// KeyFromSummaryFile maps "card-counter_summary.json" to "card-counter".
func KeyFromSummaryFile(name string) (string, error) {
	key, ok := strings.CutSuffix(name, SummaryFileSuffix)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a summary file", ErrInvalidKey, name)
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// SummaryFileName returns the file a strategy's summary is persisted to.
func SummaryFileName(key string) string {
	return key + SummaryFileSuffix
}

// FixedThreshold reports the threshold of a "fixed-threshold-{n}" key.
func FixedThreshold(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, FixedThresholdPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsFixedThreshold reports whether key belongs to the fixed-threshold family,
// whatever its suffix.
func IsFixedThreshold(key string) bool {
	return strings.HasPrefix(key, FixedThresholdPrefix)
}
