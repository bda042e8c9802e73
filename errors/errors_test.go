package errors

import (
	"context"
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

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"parse error", ErrParse, false},
		{"timeout in message", fmt.Errorf("read timeout occurred"), true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
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
		{"parse", ErrParse, true},
		{"context type", ErrContextType, true},
		{"config", Join(ErrConfig, ErrUnknownConfigKey), true},
		{"validation", fmt.Errorf("field x: %w", ErrValidation), true},
		{"unknown type", ErrUnknownType, false},
		{"classified invalid", WrapInvalid(fmt.Errorf("bad"), "c", "m", "a"), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsInvalid(test.err); got != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, got, test.err)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(ErrInheritanceLoop) {
		t.Error("inheritance loop should be fatal")
	}
	if IsFatal(ErrParse) {
		t.Error("parse error should not be fatal")
	}
	if !IsFatal(WrapFatal(fmt.Errorf("boom"), "c", "m", "a")) {
		t.Error("classified fatal should be fatal")
	}
	if IsFatal(nil) {
		t.Error("nil should not be fatal")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil", nil, ErrorTransient},
		{"parse", ErrParse, ErrorInvalid},
		{"loop", ErrInheritanceLoop, ErrorFatal},
		{"deadline", context.DeadlineExceeded, ErrorTransient},
		{"unknown", fmt.Errorf("something odd"), ErrorInvalid},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	base := fmt.Errorf("base")
	wrapped := Wrap(base, "Serializer", "Document", "context normalization")
	expected := "Serializer.Document: context normalization failed: base"
	if wrapped.Error() != expected {
		t.Errorf("expected %q, got %q", expected, wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if Wrap(nil, "a", "b", "c") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapClassified(t *testing.T) {
	err := WrapInvalid(Join(ErrParse, fmt.Errorf("unexpected EOF")), "graph", "Parse", "json decoding")

	var ce *ClassifiedError
	if !errors.As(err, &ce) {
		t.Fatal("expected ClassifiedError")
	}
	if ce.Class != ErrorInvalid {
		t.Errorf("expected invalid class, got %v", ce.Class)
	}
	if ce.Component != "graph" || ce.Operation != "Parse" {
		t.Errorf("unexpected component/operation: %s/%s", ce.Component, ce.Operation)
	}
	if !IsParseError(err) {
		t.Error("expected parse error to be detectable through the chain")
	}
	if !strings.Contains(err.Error(), "unexpected EOF") {
		t.Errorf("cause missing from message: %s", err.Error())
	}

	if WrapTransient(nil, "a", "b", "c") != nil || WrapFatal(nil, "a", "b", "c") != nil || WrapInvalid(nil, "a", "b", "c") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestClassifiedError_NoMessage(t *testing.T) {
	ce := &ClassifiedError{Class: ErrorInvalid, Err: ErrValidation}
	if ce.Error() != ErrValidation.Error() {
		t.Errorf("expected underlying message, got %q", ce.Error())
	}
}

func TestJoin(t *testing.T) {
	if Join(ErrConfig, nil) != ErrConfig {
		t.Error("join with nil cause should return sentinel")
	}
	err := Join(ErrConfig, ErrInvalidConfigValue)
	if !IsConfigError(err) || !errors.Is(err, ErrInvalidConfigValue) {
		t.Errorf("join should keep both sentinels visible: %v", err)
	}
	if IsValidationError(err) {
		t.Error("config error is not a validation error")
	}
}

func BenchmarkClassify(b *testing.B) {
	err := Wrap(ErrParse, "graph", "Parse", "decode")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Classify(err)
	}
}
