package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestErrorIs_MatchesByCode(t *testing.T) {
	err := Conflict("Destination with this name already exists")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("create: %w", err)
	assert.True(t, Is(wrapped, ErrConflict))
}

func TestValidation_CarriesFields(t *testing.T) {
	err := Validation("Validation errors",
		FieldError{Field: "destinationName", Message: "POD destination name is required"},
	)

	require.Len(t, err.Fields, 1)
	assert.Equal(t, "destinationName", err.Fields[0].Field)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
}

func TestInternal_HidesCauseFromMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Error fetching destinations", cause)

	assert.Equal(t, "Error fetching destinations", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	notFound := NotFound("Destination not found")
	assert.Same(t, notFound, From(fmt.Errorf("wrap: %w", notFound)))

	unknown := From(errors.New("boom"))
	assert.Equal(t, CodeInternal, unknown.Code)
	assert.Equal(t, "Internal server error", unknown.Message)
}
