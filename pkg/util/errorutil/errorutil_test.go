package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapToStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewBadRequest("bad"), CodeBadRequest, http.StatusBadRequest},
		{NewUnauthorized("who"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{NewNotFound("ticket"), CodeNotFound, http.StatusNotFound},
		{NewConflict("dup"), CodeConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.err)
		require.NotNil(t, de)
		assert.Equal(t, tc.code, de.Code)
		assert.Equal(t, tc.status, de.HTTPStatus)
		assert.True(t, Is(tc.err, tc.code))
	}
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewForbidden("Forbidden"))
	de := ToDomainError(wrapped)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	assert.Equal(t, "Forbidden", de.Message)
}

func TestToDomainErrorHidesInternals(t *testing.T) {
	de := ToDomainError(errors.New("pq: relation \"tickets\" does not exist"))
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "internal server error", de.Message)
	assert.NotContains(t, de.Message, "tickets")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestWithCauseKeepsMessage(t *testing.T) {
	base := NewDomainError(CodeForbidden, "Forbidden", http.StatusForbidden)
	withCause := base.WithCause(errors.New("not ticket owner"))

	assert.Nil(t, base.Err)
	assert.Equal(t, "Forbidden", withCause.Message)
	assert.Contains(t, withCause.Error(), "not ticket owner")
}
