package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrapAndCode(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("search: %w", NewAppError(ErrCodeTransport, "Unable to reach the server", cause))

	assert.True(t, IsAppError(err))
	assert.Equal(t, ErrCodeTransport, CodeOf(err))
	assert.Equal(t, "Unable to reach the server", MessageOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewAppError(ErrCodeRequiredField, "x", nil)))
	assert.True(t, IsValidation(NewAppError(ErrCodeInvalidDateRange, "x", nil)))
	assert.False(t, IsValidation(NewAppError(ErrCodeHTTP, "x", nil)))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestMessageOfForeignError(t *testing.T) {
	assert.Equal(t, "", MessageOf(nil))
	assert.Equal(t, "boom", MessageOf(errors.New("boom")))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("boom")))
}
