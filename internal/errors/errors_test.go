package errors

import (
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: "note not found: abc",
	}

	expected := "NOT_FOUND: note not found: abc"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("id is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "id is required" {
		t.Errorf("Message = %q, want %q", err.Message, "id is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01ABC")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "01ABC" {
		t.Errorf("Details[id] = %v, want %q", err.Details["id"], "01ABC")
	}
}

func TestNewEmptyNote(t *testing.T) {
	err := NewEmptyNote()

	if err.Code != ErrEmptyNote {
		t.Errorf("Code = %q, want %q", err.Code, ErrEmptyNote)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
}

func TestNewStorage(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewStorage(cause)

	if err.Code != ErrStorage {
		t.Errorf("Code = %q, want %q", err.Code, ErrStorage)
	}
	if err.Status != 503 {
		t.Errorf("Status = %d, want 503", err.Status)
	}
	if err.Message != "disk full" {
		t.Errorf("Message = %q, want %q", err.Message, "disk full")
	}

	// Nil cause falls back to a generic message
	generic := NewStorage(nil)
	if generic.Message == "" {
		t.Error("NewStorage(nil) should have a non-empty message")
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("boom"))

	if err.Code != ErrInternal {
		t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
}

func TestIs(t *testing.T) {
	if !Is(NewNotFound("x"), ErrNotFound) {
		t.Error("Is should match NewNotFound against ErrNotFound")
	}
	if Is(NewNotFound("x"), ErrEmptyNote) {
		t.Error("Is should not match NewNotFound against ErrEmptyNote")
	}
	if Is(fmt.Errorf("plain"), ErrNotFound) {
		t.Error("Is should not match a plain error")
	}
	if Is(nil, ErrNotFound) {
		t.Error("Is should not match nil")
	}
}
