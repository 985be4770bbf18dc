package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrNotAuthenticated},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusConflict, ErrConflict},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusServiceUnavailable, ErrTransport},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "CODE", "message")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("add item: %w", FromStatus(http.StatusNotFound, "NOT_FOUND", "Product not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestTransportUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transport(cause)

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.Retryable())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Please sign in to manage your cart", UserMessage(ErrNotAuthenticated))
	assert.Equal(t, "Product not found", UserMessage(FromStatus(404, "NOT_FOUND", "Product not found")))
	assert.Equal(t, "Something went wrong", UserMessage(errors.New("x")))
}
