package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cinegrid/screening-service/internal/domain"
	appvalidator "github.com/cinegrid/screening-service/internal/validator"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const ErrInternalServer = "The server encountered a problem and could not process your request"

func (app *application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	issues := make([]ValidationIssue, len(validationErrors))
	for i, fieldError := range validationErrors {
		issues[i] = ValidationIssue{
			Field: fieldError.Field(),
			Issue: appvalidator.ValidationMessage(fieldError),
		}
	}

	resp := ValidationErrorResponse{
		Message:          "Validation failed",
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: issues,
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *application) violationsResponse(w http.ResponseWriter, r *http.Request, violations []string) {
	issues := make([]ValidationIssue, len(violations))
	for i, violation := range violations {
		issues[i] = ValidationIssue{Issue: violation}
	}

	resp := ValidationErrorResponse{
		Message:          "Validation failed",
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: issues,
	}

	err := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

// scheduleErrorResponse maps scheduling service outcomes onto transport codes:
// missing movie/hall/screening to 404, an occupied hall to 409, boundary
// violations to 422, anything else to 500.
func (app *application) scheduleErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *domain.ScheduleConflictError
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrMovieNotFound),
		errors.Is(err, domain.ErrHallNotFound),
		errors.Is(err, domain.ErrScreeningNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.As(err, &conflictErr):
		app.errorResponse(w, r, http.StatusConflict, conflictErr.Error())

	case errors.As(err, &validationErr):
		app.violationsResponse(w, r, validationErr.Violations)

	default:
		app.serverErrorResponse(w, r, err)
	}
}
