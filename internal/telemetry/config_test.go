package telemetry_test

import (
	"testing"

	"github.com/tidydesk/tidydesk/internal/telemetry"
)

func TestObserveEnabled(t *testing.T) {
	t.Setenv("TIDY_OBSERVE_JSON", "1")
	if !telemetry.ObserveEnabled() {
		t.Fatal("expected ObserveEnabled with TIDY_OBSERVE_JSON=1")
	}

	t.Setenv("TIDY_OBSERVE_JSON", "")
	if telemetry.ObserveEnabled() {
		t.Fatal("expected ObserveEnabled false when unset")
	}
}
