package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	tests := []struct {
		code           Code
		status         int
		detailsAllowed bool
	}{
		{CodeValidation, http.StatusBadRequest, true},
		{CodeUnauthorized, http.StatusUnauthorized, false},
		{CodeForbidden, http.StatusForbidden, false},
		{CodeNotFound, http.StatusNotFound, false},
		{CodeConflict, http.StatusConflict, false},
		{CodeStateConflict, http.StatusUnprocessableEntity, true},
		{CodeRateLimit, http.StatusTooManyRequests, false},
		{CodeDependency, http.StatusServiceUnavailable, true},
		{CodeInternal, http.StatusInternalServerError, false},
		{Code("SOMETHING_NEW"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("%s: expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.DetailsAllowed != tt.detailsAllowed {
			t.Fatalf("%s: unexpected DetailsAllowed %v", tt.code, meta.DetailsAllowed)
		}
		if meta.PublicMessage == "" {
			t.Fatalf("%s: missing public message", tt.code)
		}
	}
}

func TestWrapKeepsCauseReachable(t *testing.T) {
	cause := stdErrors.New("duplicate key value")
	wrapped := fmt.Errorf("saving order: %w", Wrap(CodeConflict, cause, "order already exists"))

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected a coded error in the chain")
	}
	if typed.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("cause should stay reachable through the chain")
	}
}

func TestNilErrorAccessors(t *testing.T) {
	var e *Error
	if e.Code() != CodeInternal {
		t.Fatalf("nil error should report internal, got %s", e.Code())
	}
	if e.Message() != "" || e.Details() != nil || e.Error() != "" {
		t.Fatal("nil error accessors should be zero-valued")
	}
}

func TestWithDetailsRoundTrip(t *testing.T) {
	err := New(CodeValidation, "bad input").WithDetails(map[string]string{"sku": "required"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["sku"] != "required" {
		t.Fatalf("unexpected details %v", err.Details())
	}
}
