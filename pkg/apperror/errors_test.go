package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("creating closing: %w", NewStorageUnavailableError("Closing could not be saved"))

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
	assert.Equal(t, ReasonStorageUnavailable, appErr.Reason)
	assert.True(t, IsAppError(wrapped))

	plain := GetAppError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "Internal server error", plain.Message)
}

func TestConstructors(t *testing.T) {
	invalid := NewInvalidInputError("Opening cash must not be negative", FieldError{Field: "opening_cash", Message: "must be >= 0"})
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.Code)
	assert.Equal(t, ReasonInvalidInput, invalid.Reason)
	assert.Len(t, invalid.Errors, 1)

	unavailable := NewDataUnavailableError("Invoices unavailable")
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.Code)
	assert.Equal(t, ReasonDataUnavailable, unavailable.Reason)

	stale := NewStaleError("changed")
	assert.Equal(t, http.StatusConflict, stale.Code)
	assert.Equal(t, "Invoice not found", NewNotFoundError("Invoice").Error())
}
