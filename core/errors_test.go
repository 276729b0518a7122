package core

import (
	"testing"

	"github.com/pkg/errors"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(errors.New("rejected"), FieldError{Field: "username", Error: "taken"})

	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("NewValidationError() returned %T", err)
	}
	if vErr.Error() != "rejected" {
		t.Errorf("Error() = %q, want %q", vErr.Error(), "rejected")
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "username" {
		t.Errorf("Fields = %+v", vErr.Fields)
	}
}

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("unrecoverable")
	if !IsShutdown(err) {
		t.Error("IsShutdown() = false, want true")
	}
	if !IsShutdown(errors.Wrap(err, "handling request")) {
		t.Error("IsShutdown(wrapped) = false, want true")
	}
	if IsShutdown(errors.New("lol")) {
		t.Error("IsShutdown(other) = true, want false")
	}
}
