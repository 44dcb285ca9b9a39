package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessageFallbacks(t *testing.T) {
	wrapped := errors.New("disk full")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "underlying error wins", err: NewServer(wrapped), want: "disk full"},
		{name: "message when no underlying", err: NewInvalidShape("table must be at least 2x2"), want: "table must be at least 2x2"},
		{name: "null input message", err: NewNullInput(), want: "input table is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewNullInput(), http.StatusUnprocessableEntity},
		{NewInvalidShape("too small"), http.StatusUnprocessableEntity},
		{NewBusiness("session not found", CodeNotFound), http.StatusNotFound},
		{NewAccessViolation("column 0 is read-only"), http.StatusForbidden},
		{NewBusiness("session already exited", CodeExited), http.StatusConflict},
		{NewServer(errors.New("io")), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		var appErr *Error
		if !errors.As(tc.err, &appErr) {
			t.Fatalf("expected *Error, got %T", tc.err)
		}
		if got := appErr.StatusCode(); got != tc.want {
			t.Fatalf("StatusCode() for %s = %d, want %d", appErr.Code(), got, tc.want)
		}
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewAccessViolation("read-only"))
	if !HasCode(err, CodeForbidden) {
		t.Fatal("expected CodeForbidden through wrapping")
	}
	if HasCode(err, CodeNotFound) {
		t.Fatal("did not expect CodeNotFound")
	}
	if HasCode(errors.New("plain"), CodeInternal) {
		t.Fatal("plain error should not match any code")
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("permission denied")
	err := NewServer(inner)
	if !errors.Is(err, inner) {
		t.Fatal("expected errors.Is to reach the wrapped error")
	}
}
