package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusUnprocessableEntity},
		{ErrIllegalTransition, http.StatusConflict},
		{ErrAlreadyApplied, http.StatusConflict},
		{ErrAlreadySaved, http.StatusConflict},
		{ErrEmailTaken, http.StatusConflict},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatus(tc.err), tc.err.Error())
	}
}

func TestMapErrorToStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("withdraw: %w", ErrIllegalTransition)
	assert.Equal(t, http.StatusConflict, MapErrorToStatus(wrapped))
}

func TestAppError(t *testing.T) {
	inner := errors.New("boom")
	err := New(http.StatusBadGateway, "upstream failed", inner)

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := New(http.StatusBadGateway, "upstream failed", nil)
	assert.Equal(t, "upstream failed", bare.Error())
}
