package service

import apperrors "backoffice/internal/errors"

const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeNotFound        = "not_found"
	OutcomeDataIntegrity   = "data_integrity"
	OutcomeUnavailable     = "unavailable"
	OutcomeError           = "error"
)

// Outcome classifies err into the label used for logs and metrics.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if _, ok := apperrors.IsValidationError(err); ok {
		return OutcomeInvalidArgument
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return OutcomeNotFound
	}
	if _, ok := apperrors.IsDataIntegrityError(err); ok {
		return OutcomeDataIntegrity
	}
	if _, ok := apperrors.IsUnavailableError(err); ok {
		return OutcomeUnavailable
	}
	return OutcomeError
}
