package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/permitprep/backend/internal/store"
)

func testHandler() *Handler {
	return &Handler{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestHandleStoreError_Nil(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()

	if h.handleStoreError(rec, nil, "attempt") {
		t.Error("nil error must not be handled")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("nil error wrote a body: %s", rec.Body.String())
	}
}

func TestHandleStoreError_NotFound(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()

	wrapped := errors.Join(errors.New("get thing"), store.ErrNotFound)
	if !h.handleStoreError(rec, wrapped, "attempt") {
		t.Fatal("expected error to be handled")
	}
	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["error"] != "attempt not found" {
		t.Errorf("error message = %q", body["error"])
	}
}

func TestHandleStoreError_Internal(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()

	if !h.handleStoreError(rec, errors.New("disk on fire"), "attempt") {
		t.Fatal("expected error to be handled")
	}
	if rec.Code != 500 {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
