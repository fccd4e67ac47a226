package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/helojet/helojet-server/internal/errors"
	"github.com/helojet/helojet-server/internal/validation"
)

type bookingRequest struct {
	Name     string  `json:"name" validate:"nonblank,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Interest string  `json:"interest" validate:"omitempty,oneof=printer smarthome consultation other"`
	Price    float64 `json:"price" validate:"gte=0"`
}

func validRequest() bookingRequest {
	return bookingRequest{Name: "Ann", Email: "ann@example.com", Interest: "printer", Price: 10}
}

func TestValidator_ValidateSuccess(t *testing.T) {
	assert.NoError(t, validation.New().Validate(validRequest()))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		mutate    func(*bookingRequest)
		wantField string
		wantMsg   string
	}{
		{"blank name", func(r *bookingRequest) { r.Name = "   " }, "name", "is required"},
		{"invalid email", func(r *bookingRequest) { r.Email = "not-an-email" }, "email", "must be a valid email address"},
		{"unknown interest", func(r *bookingRequest) { r.Interest = "cars" }, "interest", "must be one of: printer smarthome consultation other"},
		{"negative price", func(r *bookingRequest) { r.Price = -1 }, "price", "must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := v.Validate(req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("url", "https://example.com/a.jpg", "required,http_url"))

	err := v.Var("url", "not a url", "required,http_url")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestValidator_ImageSrc(t *testing.T) {
	v := validation.New()

	for _, ok := range []string{
		"https://img.test/a.jpg",
		"http://img.test/b.png",
		"data:image/png;base64,iVBORw0KGgo=",
	} {
		assert.NoError(t, v.Var("url", ok, "required,image_src"), ok)
	}

	for _, bad := range []string{"not a url", "ftp://img.test/a.jpg", "data:text/plain,hi", "https://"} {
		err := v.Var("url", bad, "required,image_src")
		require.Error(t, err, bad)
		assert.Equal(t, map[string]string{"url": "must be an image URL or data URI"}, domainerrors.From(err).Details)
	}
}
