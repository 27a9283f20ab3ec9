package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("amount must be greater than zero"), http.StatusBadRequest},
		{"unauthenticated", NewUnauthenticatedError("bad credentials"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("access denied"), http.StatusForbidden},
		{"not found", NewNotFoundError("customer not found"), http.StatusNotFound},
		{"conflict", NewConflictError("duplicate phone"), http.StatusConflict},
		{"upstream", NewUpstreamError("failed to list customers", errors.New("dial tcp: refused")), http.StatusInternalServerError},
		{"data integrity", NewDataIntegrityError("bad row", nil), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"record not found sentinel", ErrorRecordNotFound, http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("context: %w", NewConflictError("duplicate")), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestClientMessageHidesInternalCauses(t *testing.T) {
	cause := errors.New("Error 1045: Access denied for user 'root'@'10.0.0.1'")
	err := NewUpstreamError("failed to fetch customer", cause)

	msg := ClientMessage(err)
	if msg != "internal server error" {
		t.Fatalf("ClientMessage = %q, want generic message", msg)
	}
	// The cause must still be reachable for logging.
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause lost")
	}
}

func TestClientMessagePassesThroughClientSafeKinds(t *testing.T) {
	err := NewValidationError("phone number must be exactly 10 digits")
	if got := ClientMessage(err); got != "phone number must be exactly 10 digits" {
		t.Errorf("ClientMessage = %q", got)
	}
}
