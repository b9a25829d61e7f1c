package careererrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrCareerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job posting not found",
		http.StatusNotFound,
	)
	ErrInvalidBanner = apperror.New(
		apperror.CodeValidation,
		"Banner must be an image",
		http.StatusBadRequest,
	)
)
