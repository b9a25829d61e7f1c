package taskerrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrTaskNotOwned = apperror.New(
		apperror.CodeForbidden,
		"Task does not belong to this employee",
		http.StatusForbidden,
	)
	ErrDetailNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task detail not found",
		http.StatusNotFound,
	)
	ErrDetailExistsToday = apperror.New(
		apperror.CodeConflict,
		"A progress update for this task was already added today",
		http.StatusConflict,
	)
	ErrProjectNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Project does not exist",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee does not exist",
		http.StatusBadRequest,
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
