package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-worktrack/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type validationInput struct {
	FirstName string `validate:"required"`
	Email     string `validate:"email"`
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "name already exists", http.StatusConflict)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
		assert.Equal(t, "name already exists", got.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		base := apperror.New(apperror.CodeNotFound, "task not found", http.StatusNotFound)
		err := fmt.Errorf("load task: %w", base)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, "task not found", got.Message)
	})

	t.Run("unknown error hides details", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "An unexpected error occurred", got.Message)
	})

	t.Run("validation errors become field messages", func(t *testing.T) {
		err := validator.New().Struct(validationInput{Email: "x@example.com"})

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, apperror.CodeValidation, got.Code)
		assert.Equal(t, "Firstname is required", got.Message)
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", http.StatusInternalServerError))

	cause := errors.New("disk full")
	err := apperror.Wrap(cause, apperror.CodeInternalError, "save failed", http.StatusInternalServerError)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save failed: disk full", err.Error())
}
