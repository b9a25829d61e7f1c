package wikierrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Wiki category not found",
		http.StatusNotFound,
	)
	ErrCategoryAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"This wiki category already exists",
		http.StatusConflict,
	)
	ErrCategoryHasPages = apperror.New(
		apperror.CodeHasDependents,
		"Wiki category still has pages",
		http.StatusConflict,
	)
	ErrPageNotFound = apperror.New(
		apperror.CodeNotFound,
		"Wiki page not found",
		http.StatusNotFound,
	)
	ErrInvalidImage = apperror.New(
		apperror.CodeValidation,
		"Category image must be an image file",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
