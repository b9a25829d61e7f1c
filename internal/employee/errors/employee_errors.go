package employeeerrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrPhoneAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same phone number already exists",
		http.StatusConflict,
	)
	ErrEmployeeHasTasks = apperror.New(
		apperror.CodeHasDependents,
		"Employee has tasks assigned and cannot be deleted",
		http.StatusConflict,
	)
	ErrEmployeeHoldsAssets = apperror.New(
		apperror.CodeHasDependents,
		"Employee still holds allocated assets and cannot be deleted",
		http.StatusConflict,
	)
	ErrReportingManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Reporting manager does not exist",
		http.StatusBadRequest,
	)
	ErrEmergencyAlreadyUpdated = apperror.New(
		apperror.CodeAlreadyProcessed,
		"Emergency contact was already updated, ask an admin to change it",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
