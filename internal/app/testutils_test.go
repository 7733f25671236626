package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/cinegrid/screening-service/internal/scheduler"
	appvalidator "github.com/cinegrid/screening-service/internal/validator"
	"github.com/go-chi/chi/v5"
)

func newTestApplication(screenings domain.ScreeningRepository) *application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &application{
		logger:    logger,
		validator: appvalidator.NewValidator(),
		scheduler: scheduler.New(screenings, logger),
	}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// executeScreeningRequest builds a request whose screeningID URL parameter is
// resolvable through the chi route context.
func executeScreeningRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	w, r := executeRequest(t, method, url, body)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("screeningID", strings.TrimPrefix(url, "/screenings/"))

	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
