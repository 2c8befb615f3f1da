package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"patient_id": "required",
		"doctor_id":  "required",
	}}
	want := "validation failed: doctor_id: required; patient_id: required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	base := NewNotFound("patient", 42)
	wrapped := fmt.Errorf("load history: %w", base)

	var nf *NotFoundError
	if !errors.As(wrapped, &nf) {
		t.Fatal("errors.As failed on wrapped NotFoundError")
	}
	if nf.Entity != "patient" || nf.ID != 42 {
		t.Errorf("unexpected NotFoundError: %+v", nf)
	}
}

func TestConflictMessage(t *testing.T) {
	err := NewConflict("medication referenced by %d prescription(s)", 3)
	if err.Error() != "medication referenced by 3 prescription(s)" {
		t.Errorf("Error() = %q", err.Error())
	}
}
