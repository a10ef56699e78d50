package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeOverconstrained, "axis %s of %q already has two constrained attributes", "x", "label")

	if err.Code != ErrCodeOverconstrained {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeOverconstrained)
	}
	want := `axis x of "label" already has two constrained attributes`
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("underlying failure")
	err := Wrap(ErrCodeCycle, cause, "constraint graph rejected")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error not found by errors.Is")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidAttribute, "bad attribute"),
			want: "INVALID_ATTRIBUTE: bad attribute",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInternal, stderrors.New("boom"), "layout pass failed"),
			want: "INTERNAL_ERROR: layout pass failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeCycle, "cycle detected")

	if !Is(err, ErrCodeCycle) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeCycle) {
		t.Error("Is() = true for non-structured error")
	}

	// Code survives wrapping with %w.
	wrapped := fmt.Errorf("during pass: %w", err)
	if !Is(wrapped, ErrCodeCycle) {
		t.Error("Is() = false for fmt-wrapped error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnknownItem, "no such item")); got != ErrCodeUnknownItem {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeUnknownItem)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidScene, "missing container bounds")); got != "missing container bounds" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}
