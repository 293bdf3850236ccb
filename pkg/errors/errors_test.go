package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:        http.StatusBadRequest,
		CodeNotFound:          http.StatusNotFound,
		CodeConflict:          http.StatusConflict,
		CodeInsufficientStock: http.StatusUnprocessableEntity,
		CodeInternal:          http.StatusInternalServerError,
		CodeDependency:        http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Errorf("MetadataFor(%s).HTTPStatus = %d, want %d", code, got, status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeDependency, cause, "writing movement")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsUnwrapsThroughFmtErrorf(t *testing.T) {
	typed := New(CodeInsufficientStock, "not enough stock").WithDetails(map[string]int64{"available": 2})
	wrapped := fmt.Errorf("recording movement: %w", typed)

	got := As(wrapped)
	if got == nil {
		t.Fatal("expected typed error to be recovered")
	}
	if got.Code() != CodeInsufficientStock {
		t.Fatalf("unexpected code %s", got.Code())
	}
	if got.Details() == nil {
		t.Fatal("expected details to survive wrapping")
	}
}

func TestDumpIncludesChain(t *testing.T) {
	err := Wrap(CodeConflict, errors.New("sku taken"), "creating product")
	dump := Dump(err)

	if dump.Code != CodeConflict {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(dump.Chain))
	}
}
