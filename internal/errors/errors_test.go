package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Resource(t *testing.T) {
	err := NewResourceNotFoundError(ResourceColor, "green")

	assert.Equal(t, ResourceColor, err.Resource)
	assert.Equal(t, "green", err.Key)
	assert.Equal(t, `color "green" not found`, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewResourceNotFoundError(ResourceOrder, "o1")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, `order "o1" not found`, notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewResourceNotFoundError(ResourceProduct, "p1"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, ResourceProduct, notFoundErr.Resource)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "quantity", Message: "must be a non-negative integer"},
		{Field: "selectedColor", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Same(t, err, ve)
}

func TestDataIntegrityError(t *testing.T) {
	cause := errors.New("duplicate color")
	err := NewDataIntegrityError("color ledger is malformed", cause)

	assert.Contains(t, err.Error(), "color ledger is malformed")
	assert.Contains(t, err.Error(), "duplicate color")
	assert.True(t, errors.Is(err, cause))

	_, ok := IsDataIntegrityError(fmt.Errorf("wrap: %w", err))
	assert.True(t, ok)

	_, ok = IsDataIntegrityError(NewUnavailableError("down", nil))
	assert.False(t, ok)
}

func TestUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUnavailableError("loading product", cause)

	assert.Equal(t, "loading product: connection refused", err.Error())
	assert.Equal(t, cause, err.Unwrap())

	_, ok := IsUnavailableError(err)
	assert.True(t, ok)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
