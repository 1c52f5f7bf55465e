package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeCatalogUnavailable, http.StatusServiceUnavailable},
		{CodeCatalogParse, http.StatusUnprocessableEntity},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		if got := MetadataFor(tc.code); got.HTTPStatus != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, got.HTTPStatus)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("boom")
	err := Wrap(CodeCatalogParse, cause, "parse workbook")

	if err.Unwrap() != cause {
		t.Fatal("expected cause to be preserved")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeCatalogParse {
		t.Fatalf("expected typed error through chain, got %v", typed)
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeValidation, nil, "missing field")
	if err.Unwrap() != nil {
		t.Fatal("expected nil cause")
	}
	if err.Error() != "VALIDATION_ERROR: missing field" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"qty": "must be at least 1"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["qty"] != "must be at least 1" {
		t.Fatalf("unexpected details: %v", err.Details())
	}
}
