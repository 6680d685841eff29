package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(NewNotFoundError("nope")))
	assert.Equal(t, Conflict, KindOf(NewConflictError("dup")))
	assert.Equal(t, Other, KindOf(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("outer: %w", NewInvalidStateError("too early"))
	assert.Equal(t, InvalidState, KindOf(wrapped))
}

func TestIsKind(t *testing.T) {
	err := NewUnauthorizedError("bad credentials")
	assert.True(t, IsKind(err, Unauthorized))
	assert.False(t, IsKind(err, Forbidden))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewConflictError("dup"), http.StatusConflict},
		{NewInvalidParamsError("bad"), http.StatusBadRequest},
		{NewInvalidStateError("early"), http.StatusBadRequest},
		{NewNotFoundError("nope"), http.StatusNotFound},
		{NewUnauthorizedError("who"), http.StatusUnauthorized},
		{NewForbiddenError("no"), http.StatusForbidden},
		{NewInternalServerError("boom"), http.StatusInternalServerError},
		{NewDependencyError("smtp", fmt.Errorf("dial")), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("dial tcp: refused")
	err := NewDependencyError("smtp relay unavailable", inner)
	assert.ErrorIs(t, err, inner)
}
