package asseterrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Asset not found",
		http.StatusNotFound,
	)
	ErrAssetNotAvailable = apperror.New(
		apperror.CodeConflict,
		"Asset is not available for allocation",
		http.StatusConflict,
	)
	ErrAssetHasAllocations = apperror.New(
		apperror.CodeHasDependents,
		"Asset has allocation history and cannot be deleted",
		http.StatusConflict,
	)
	ErrAllocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Allocation not found",
		http.StatusNotFound,
	)
	ErrAllocationReturned = apperror.New(
		apperror.CodeAlreadyProcessed,
		"Allocation has already been returned",
		http.StatusConflict,
	)
	ErrAllocationInactive = apperror.New(
		apperror.CodeInvalidState,
		"Issues can only be reported on an active allocation",
		http.StatusConflict,
	)
	ErrIssueNotFound = apperror.New(
		apperror.CodeNotFound,
		"Issue not found",
		http.StatusNotFound,
	)
	ErrIssueResolved = apperror.New(
		apperror.CodeAlreadyProcessed,
		"Issue has already been resolved",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidPrice = apperror.New(
		apperror.CodeValidation,
		"Price must be a non-negative number",
		http.StatusBadRequest,
	)
)
