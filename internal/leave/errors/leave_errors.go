package leaveerrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"This leave type already exists",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Start date must be before or equal to end date",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeAlreadyProcessed,
		"Leave request has already been processed",
		http.StatusConflict,
	)
)
