package telemetry

import (
	"os"
)

// ObserveEnabled reports whether JSONL emission is on. Evaluated per call so
// TIDY_OBSERVE_JSON can be toggled by tests.
func ObserveEnabled() bool {
	return os.Getenv("TIDY_OBSERVE_JSON") == "1"
}
