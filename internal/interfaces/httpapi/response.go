package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const (
	googleAPIVersion     = "2.0"
	errorDomain          = "league-standings"
	internalErrorMessage = "internal server error"
	retryAfterSeconds    = "5"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = internalErrorMessage
	}
	if mapped.HTTPStatus == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope(mapped, message))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorEnvelope(internalError, internalErrorMessage))
}

func errorEnvelope(mapped mappedError, message string) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: message,
			}},
		},
	}
}

var (
	internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

	// First match wins.
	errorTable = []struct {
		targets []error
		mapped  mappedError
	}{
		{targets: []error{usecase.ErrInvalidInput}, mapped: mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}},
		{targets: []error{usecase.ErrNotFound}, mapped: mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}},
		{targets: []error{usecase.ErrDependencyUnavailable, usecase.ErrFetchFailure}, mapped: mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}},
	}
)

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, row := range errorTable {
		for _, target := range row.targets {
			if errors.Is(err, target) {
				return row.mapped
			}
		}
	}
	return internalError
}
