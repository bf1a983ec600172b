package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		status   int
		sentinel error
	}{
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "blog_posts_slug_key"`), http.StatusConflict, ErrAlreadyExists},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: blog_posts.slug"), http.StatusConflict, ErrAlreadyExists},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, ErrForeignKeyConstraint},
		{"connection", errors.New("failed to connect: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ErrDatabaseTimeout},
		{"other", errors.New("syntax error at or near"), http.StatusInternalServerError, ErrDatabaseQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "blog post", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.cause, err.Cause)
		})
	}
}

func TestNotFound(t *testing.T) {
	err := NewNotFound("blog post")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "blog post not found", err.Error())
}

func TestNewValidationError(t *testing.T) {
	type form struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
		Score int    `json:"score" validate:"max=5"`
	}
	v := validator.New()

	t.Run("missing field", func(t *testing.T) {
		err := NewValidationError(v.Struct(form{}))
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.True(t, IsMissingRequiredFieldError(err))
		assert.Equal(t, "Name", err.Field)
	})

	t.Run("invalid field", func(t *testing.T) {
		err := NewValidationError(v.Struct(form{Name: "x", Email: "nope"}))
		assert.True(t, IsInvalidFieldError(err))
		assert.Contains(t, err.Details, "valid email")
	})

	t.Run("numeric bound", func(t *testing.T) {
		err := NewValidationError(v.Struct(form{Name: "x", Score: 9}))
		assert.Contains(t, err.Details, "must be at most 5")
		assert.NotContains(t, err.Details, "characters")
	})

	t.Run("non-validator error", func(t *testing.T) {
		err := NewValidationError(errors.New("bad input"))
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.True(t, IsInvalidFieldError(err))
	})
}

func TestGetFullError(t *testing.T) {
	inner := NewDatabaseError("find", "faq", errors.New("boom"))
	outer := NewInternalError("listing failed")
	outer.Cause = inner

	full := outer.GetFullError()
	assert.Contains(t, full, "listing failed")
	assert.Contains(t, full, "boom")
}

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("contact form", 0)
	require.Equal(t, http.StatusTooManyRequests, err.StatusCode)
	assert.True(t, IsRateLimitError(err))
}

func TestAuthErrors(t *testing.T) {
	for _, err := range []*ApiErr{NewMissingTokenError(), NewExpiredTokenError(), NewInvalidTokenError(), NewInvalidCredentialsError(), Unauthorized} {
		assert.Equal(t, http.StatusUnauthorized, err.StatusCode)
		assert.True(t, IsAuthError(err), err.Error())
	}
	assert.False(t, IsAuthError(NewNotFound("faq")))
	assert.ErrorIs(t, NewExpiredTokenError(), ErrExpiredToken)
}

func TestInvalidParamError(t *testing.T) {
	err := NewInvalidParamError("id", "must be a UUID")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "id", err.Field)
	assert.ErrorIs(t, err, ErrBadRequest)
}
