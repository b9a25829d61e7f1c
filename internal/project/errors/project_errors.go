package projecterrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)
	ErrProjectHasTasks = apperror.New(
		apperror.CodeHasDependents,
		"Cannot delete project with assigned tasks",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
)
