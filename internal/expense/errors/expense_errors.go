package expenseerrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrExpenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Expense not found",
		http.StatusNotFound,
	)
	ErrExpenseTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Expense type not found",
		http.StatusNotFound,
	)
	ErrExpenseTypeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"This expense type already exists",
		http.StatusConflict,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeValidation,
		"Amount must be a non-negative number",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidInvoice = apperror.New(
		apperror.CodeValidation,
		"Invoice must be an image or a PDF",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeAlreadyProcessed,
		"Expense has already been processed",
		http.StatusConflict,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate the expense report",
		http.StatusInternalServerError,
	)
)
