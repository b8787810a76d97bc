package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError signals malformed or out-of-range input.
type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

const (
	ResourceProduct = "product"
	ResourceColor   = "color"
	ResourceOrder   = "order"
)

// NotFoundError signals an unknown product, order or ledger color.
type NotFoundError struct {
	Resource string
	Key      string
	Message  string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewResourceNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Key:      key,
		Message:  fmt.Sprintf("%s %q not found", resource, key),
	}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// DataIntegrityError signals that already persisted data violates an
// invariant. It is never repaired automatically.
type DataIntegrityError struct {
	Message string
	Cause   error
}

func (e *DataIntegrityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Cause
}

func NewDataIntegrityError(message string, cause error) *DataIntegrityError {
	return &DataIntegrityError{
		Message: message,
		Cause:   cause,
	}
}

func IsDataIntegrityError(err error) (*DataIntegrityError, bool) {
	var die *DataIntegrityError
	if errors.As(err, &die) {
		return die, true
	}
	return nil, false
}

// UnavailableError signals that the underlying store failed to read or write.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

func NewUnavailableError(message string, cause error) *UnavailableError {
	return &UnavailableError{
		Message: message,
		Cause:   cause,
	}
}

func IsUnavailableError(err error) (*UnavailableError, bool) {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
