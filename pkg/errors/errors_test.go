package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithCause(t *testing.T) {
	base := ErrInternal("failed to save")
	cause := goerrors.New("connection refused")

	wrapped := base.WithCause(cause)

	assert.Nil(t, base.Unwrap(), "constructor value must not be mutated")
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "failed to save: connection refused", wrapped.Error())
}

func TestErrNotFound(t *testing.T) {
	err := ErrNotFound("student", 42)

	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "student", err.Metadata["resource"])
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", err)))
	assert.False(t, IsConflict(err))
}

func TestWrap(t *testing.T) {
	t.Run("plain error becomes internal", func(t *testing.T) {
		err := Wrap(goerrors.New("boom"), "failed to load")
		assert.Equal(t, CodeInternal, err.Code)
		assert.Equal(t, http.StatusInternalServerError, HTTPStatusOf(err))
		assert.True(t, ShouldLog(err))
	})

	t.Run("app error keeps its code", func(t *testing.T) {
		original := ErrConflict("already enrolled")
		err := Wrap(fmt.Errorf("enroll: %w", original), "failed to enroll")
		assert.Same(t, original, err)
		assert.False(t, ShouldLog(err))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "unused"))
	})
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation(map[string]string{"email": "is required"})

	assert.Equal(t, CodeInvalidRequest, err.Code)
	assert.Equal(t, "is required", err.Metadata["email"])
}

func TestHTTPStatusOf_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusOf(goerrors.New("x")))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatusOf(ErrRateLimitExceeded("login")))
}
