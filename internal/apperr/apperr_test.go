package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnknownWeather, http.StatusBadRequest},
		{CodeInvalidTime, http.StatusBadRequest},
		{CodeLocationNotFound, http.StatusNotFound},
		{CodeNoRoute, http.StatusNotFound},
		{CodeServiceUnavailable, http.StatusBadGateway},
		{CodeModelUnavailable, http.StatusInternalServerError},
		{CodeFeatureMismatch, http.StatusInternalServerError},
		{CodePredictionFailed, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, New(tc.code, "x").HTTPStatus(), "code %s", tc.code)
	}
}

func TestCodeOfUnwrapsChain(t *testing.T) {
	inner := New(CodeNoRoute, "no route between endpoints")
	wrapped := fmt.Errorf("predict trip: %w", inner)

	assert.Equal(t, CodeNoRoute, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, CodeNoRoute))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeServiceUnavailable, "routing service failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "collaborator_unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}
