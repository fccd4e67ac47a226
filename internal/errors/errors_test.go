package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeValidation, http.StatusBadRequest},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("Product not found.")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, "Product not found.", err.Error())
	assert.Equal(t, http.StatusNotFound, err.GetStatus())
}

func TestError_WithCause(t *testing.T) {
	cause := stderrors.New("slot write failed")
	err := Validation("Could not save.").WithCause(cause)

	assert.Equal(t, "Could not save.: slot write failed", err.Error())
	assert.True(t, Is(err, cause))
	assert.True(t, Is(err, ErrValidation))
}

func TestError_WithDetails(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"email": "is required"})

	require.NotSame(t, base, detailed)
	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"email": "is required"}, detailed.Details)
	assert.Equal(t, http.StatusBadRequest, detailed.HTTPStatus())
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("commit draft: %w", Validationf("Price must be at least %d.", 0))

	got := From(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, CodeValidation, got.Code)
	assert.Nil(t, From(stderrors.New("plain")))
}
