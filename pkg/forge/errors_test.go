package forge

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForgeErrorFormatting(t *testing.T) {
	err := NewForgeError(ErrorTypeConflict, "account alice", "already exists", nil)
	assert.Equal(t, "conflict error for account alice: already exists", err.Error())

	bare := NewForgeError(ErrorTypeTransport, "", "connection reset", nil)
	assert.Equal(t, "transport error: connection reset", bare.Error())
}

func TestForgeErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewForgeError(ErrorTypeTransport, "account alice", "network failure", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsNotFound(t *testing.T) {
	notFound := NewForgeError(ErrorTypeNotFound, "account alice", "not found", nil)
	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(fmt.Errorf("fetch failed: %w", notFound)))

	assert.False(t, IsNotFound(NewForgeError(ErrorTypeConflict, "account alice", "conflict", nil)))
	assert.False(t, IsNotFound(errors.New("not found")))
	assert.False(t, IsNotFound(nil))
}

func TestErrorTypeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusUnauthorized, ErrorTypeUnauthorized},
		{http.StatusForbidden, ErrorTypeUnauthorized},
		{http.StatusConflict, ErrorTypeConflict},
		{http.StatusUnprocessableEntity, ErrorTypeConflict},
		{http.StatusInternalServerError, ErrorTypeTransport},
		{http.StatusBadGateway, ErrorTypeTransport},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorTypeForStatus(tt.status), "status %d", tt.status)
	}
}

func TestValidationErrors(t *testing.T) {
	var verrs ValidationErrors
	assert.False(t, verrs.HasErrors())
	assert.Equal(t, "validation failed", verrs.Error())

	verrs.Add("users.alice.email", "", "email is required")
	assert.True(t, verrs.HasErrors())
	assert.Equal(t, "validation error for field 'users.alice.email': email is required", verrs.Error())

	verrs.Add("repos.dave.proj.gitHub", "nope", "mirror source must be a valid URI")
	assert.Contains(t, verrs.Error(), "validation failed with 2 errors")
	assert.Contains(t, verrs.Error(), "(value: nope)")
}
