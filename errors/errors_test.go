package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid capacity", ErrInvalidCapacity, true},
		{"invalid config", ErrInvalidConfig, true},
		{"missing config", ErrMissingConfig, true},
		{"duplicate metric", ErrDuplicateMetric, true},
		{"wrapped invalid capacity", fmt.Errorf("New: %w", ErrInvalidCapacity), true},
		{"stale reference", ErrStaleReference, false},
		{"generic error", errors.New("something happened"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("IsInvalid(%v) = %v, expected %v", test.err, result, test.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"stale reference", ErrStaleReference, true},
		{"corrupted message", errors.New("index corrupted"), true},
		{"panic message", errors.New("panic during eviction"), true},
		{"invalid capacity", ErrInvalidCapacity, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsFatal(test.err)
			if result != test.expected {
				t.Errorf("IsFatal(%v) = %v, expected %v", test.err, result, test.expected)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"timeout message", errors.New("operation timeout"), true},
		{"busy message", errors.New("resource busy"), true},
		{"classified transient", WrapTransient(errors.New("x"), "c", "m", "a"), true},
		{"classified invalid", WrapInvalid(errors.New("x"), "c", "m", "a"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("IsTransient(%v) = %v, expected %v", test.err, result, test.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil error", nil, ErrorTransient},
		{"invalid capacity", ErrInvalidCapacity, ErrorInvalid},
		{"stale reference", ErrStaleReference, ErrorFatal},
		{"unknown error", errors.New("mystery"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := Classify(test.err)
			if result != test.expected {
				t.Errorf("Classify(%v) = %v, expected %v", test.err, result, test.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrap(base, "cache", "New", "capacity validation")

	if wrapped == nil {
		t.Fatal("expected non-nil wrapped error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base error")
	}
	expected := "cache.New: capacity validation failed: boom"
	if wrapped.Error() != expected {
		t.Errorf("expected %q, got %q", expected, wrapped.Error())
	}

	if Wrap(nil, "cache", "New", "anything") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapInvalid(t *testing.T) {
	wrapped := WrapInvalid(ErrInvalidCapacity, "cache", "New", "capacity validation")

	var ce *ClassifiedError
	if !errors.As(wrapped, &ce) {
		t.Fatal("expected a ClassifiedError")
	}
	if ce.Class != ErrorInvalid {
		t.Errorf("expected ErrorInvalid class, got %v", ce.Class)
	}
	if ce.Component != "cache" || ce.Operation != "New" {
		t.Errorf("unexpected component/operation: %s/%s", ce.Component, ce.Operation)
	}
	if !errors.Is(wrapped, ErrInvalidCapacity) {
		t.Error("classified error should unwrap to the sentinel")
	}
	if !IsInvalid(wrapped) {
		t.Error("classified invalid error should report as invalid")
	}
	if !strings.Contains(wrapped.Error(), "capacity validation failed") {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}

	if WrapInvalid(nil, "cache", "New", "anything") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapTransientAndFatal(t *testing.T) {
	base := errors.New("boom")

	transient := WrapTransient(base, "metric", "Start", "server startup")
	if Classify(transient) != ErrorTransient {
		t.Error("expected transient classification")
	}

	fatal := WrapFatal(base, "metric", "Start", "registry setup")
	if Classify(fatal) != ErrorFatal {
		t.Error("expected fatal classification")
	}
	if !IsFatal(fatal) {
		t.Error("expected IsFatal to report true")
	}
}
