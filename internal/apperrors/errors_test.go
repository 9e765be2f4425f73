package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no session"), http.StatusUnauthorized},
		{"not found", NotFound("gone"), http.StatusNotFound},
		{"conflict", Conflict("duplicate"), http.StatusConflict},
		{"internal", Internal("broke", errors.New("cause")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal("could not create vote", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "could not create vote")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsPassesThroughStructuredErrors(t *testing.T) {
	original := NotFound("post not found")

	wrapped := fmt.Errorf("handler: %w", original)
	structured := As(wrapped)

	require.NotNil(t, structured)
	assert.Equal(t, KindNotFound, structured.Kind)
	assert.Equal(t, "post not found", structured.Message)
}

func TestAsWrapsUnstructuredErrors(t *testing.T) {
	structured := As(errors.New("something odd"))

	require.NotNil(t, structured)
	assert.Equal(t, KindInternal, structured.Kind)
	assert.Equal(t, "internal server error", structured.Message)
}

func TestAsNil(t *testing.T) {
	assert.Nil(t, As(nil))
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("duplicate vote"))

	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}
