package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		code   string
	}{
		{NotFound("x %s", "y"), http.StatusNotFound, "NOT_FOUND"},
		{InvalidState("x"), http.StatusBadRequest, "INVALID_STATE"},
		{OutOfRange("x"), http.StatusBadRequest, "OUT_OF_RANGE"},
		{InvalidRange("x"), http.StatusBadRequest, "INVALID_RANGE"},
		{Conflict("x"), http.StatusConflict, "CONFLICT"},
		{Forbidden("x"), http.StatusForbidden, "FORBIDDEN"},
		{Unauthorized("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{Internal(errors.New("x")), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, tc.err.Status)
		}
		if tc.err.Code != tc.code {
			t.Fatalf("expected code %s, got %s", tc.code, tc.err.Code)
		}
	}
}

func TestFrom(t *testing.T) {
	orig := Conflict("taken")
	if got := From(orig); got != orig {
		t.Fatalf("From must pass through an *Error unchanged")
	}

	wrapped := fmt.Errorf("context: %w", orig)
	if got := From(wrapped); got != orig {
		t.Fatalf("From must unwrap to the embedded *Error")
	}

	plain := errors.New("boom")
	got := From(plain)
	if got.Code != "INTERNAL" || got.Status != http.StatusInternalServerError {
		t.Fatalf("unknown errors must map to INTERNAL, got %s/%d", got.Code, got.Status)
	}
	if !errors.Is(got, plain) {
		t.Fatalf("wrapped cause must remain reachable")
	}
}

func TestErrorMessage(t *testing.T) {
	if msg := NotFound("user %d missing", 7).Error(); msg != "user 7 missing" {
		t.Fatalf("unexpected message: %q", msg)
	}
	var nilErr *Error
	if nilErr.Error() != "" {
		t.Fatalf("nil error must render empty")
	}
}
