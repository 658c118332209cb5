package http

import (
	"encoding/json"
	"errors"
	apperrors "hotelres/pkg/errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.NotFoundWithID("Reservation", 42), http.StatusNotFound, apperrors.CodeNotFound},
		{"validation", apperrors.Validation("bad", nil), http.StatusUnprocessableEntity, apperrors.CodeValidation},
		{"no availability", apperrors.NoAvailability("full", nil), http.StatusConflict, apperrors.CodeNoAvailability},
		{"transition", apperrors.InvalidTransition("nope", nil), http.StatusConflict, apperrors.CodeInvalidTransition},
		{"invalid input", apperrors.InvalidInput("bad id"), http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"plain error", errors.New("secret detail"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("unexpected write error: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, body.Code)
			}
			if body.Error == "secret detail" {
				t.Error("plain errors must not leak their message")
			}
		})
	}
}

func TestWritePaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = WritePaginated(rec, []int{1, 2}, 10, 2, 4)

	var body PaginatedResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.TotalCount != 10 || body.Limit != 2 || body.Offset != 4 {
		t.Errorf("unexpected body %+v", body)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Error("expected JSON content type")
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{"", 20, 0, false},
		{"limit=5&offset=10", 5, 10, false},
		{"limit=1000", 100, 0, false},
		{"offset=-3", 20, 0, false},
		{"limit=abc", 0, 0, true},
		{"offset=x", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x?"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if tt.wantErr {
				return
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := Page(items, 2, 0); len(got) != 2 || got[0] != 1 {
		t.Errorf("unexpected first page %v", got)
	}
	if got := Page(items, 2, 4); len(got) != 1 || got[0] != 5 {
		t.Errorf("unexpected last page %v", got)
	}
	if got := Page(items, 2, 10); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil page, got %v", got)
	}
}
