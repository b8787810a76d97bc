package httpio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/dto"
	apperrors "backoffice/internal/errors"
)

const maxBodyBytes = 1 << 20

type traceIDKey struct{}

// TraceMiddleware tags every request with a fresh trace id, echoed in the
// X-Trace-Id response header.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()
		w.Header().Set("X-Trace-Id", traceID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), traceIDKey{}, traceID)))
	})
}

func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// DecodeStrict decodes a single JSON object into v, rejecting unknown
// fields and trailing data. Failures come back as validation errors.
func DecodeStrict(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: err.Error(),
		})
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must contain a single JSON object",
		})
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps err onto a status code and a JSON error body.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	traceID := TraceID(r.Context())
	logger = logger.With(zap.String("traceId", traceID))

	resp := dto.ErrorResponse{
		TraceID:   traceID,
		Timestamp: time.Now().UTC(),
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Status, resp.Code, resp.Message, resp.Details = http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details
	} else if nfe, ok := apperrors.IsNotFoundError(err); ok {
		resp.Status, resp.Code, resp.Message, resp.Resource = http.StatusNotFound, "NOT_FOUND", nfe.Message, nfe.Resource
	} else if die, ok := apperrors.IsDataIntegrityError(err); ok {
		logger.Error("data integrity violation", zap.Error(err))
		resp.Status, resp.Code, resp.Message = http.StatusInternalServerError, "DATA_INTEGRITY", die.Message
	} else if _, ok := apperrors.IsUnavailableError(err); ok {
		logger.Error("store unavailable", zap.Error(err))
		resp.Status, resp.Code, resp.Message = http.StatusServiceUnavailable, "UNAVAILABLE", "the data store is unavailable, retry later"
	} else {
		logger.Error("unexpected error", zap.Error(err))
		resp.Status, resp.Code, resp.Message = http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
	}

	WriteJSON(w, logger, resp.Status, resp)
}

// RequiredField builds the validation error for a missing body field.
func RequiredField(name string) error {
	return apperrors.NewValidationError(fmt.Sprintf("%s is required", name), apperrors.ValidationDetail{
		Field:   name,
		Message: name + " is required",
	})
}
