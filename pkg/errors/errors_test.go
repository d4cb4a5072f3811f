package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewHostError("completion delivery failed", map[string]any{"query_id": "q1"}).WithCause(cause)

	if got := err.Error(); got != "completion delivery failed: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestNewExtractionError(t *testing.T) {
	err := NewExtractionError("completion endpoint returned 401", 401, map[string]any{"request_id": "req-9"})

	if err.Code != CodeExtraction {
		t.Errorf("Code = %q", err.Code)
	}
	if err.StatusCode != 401 {
		t.Errorf("StatusCode = %d", err.StatusCode)
	}
	if err.Context["request_id"] != "req-9" {
		t.Errorf("Context = %v", err.Context)
	}
	if err.Error() != "completion endpoint returned 401" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewWriteErrorCarriesProvider(t *testing.T) {
	err := NewWriteError("eudic category list returned 403", "eudic", 403)
	if err.Provider != "eudic" || err.Context["provider"] != "eudic" {
		t.Errorf("provider not carried: %+v", err)
	}
}
