package policyerrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Policy not found",
		http.StatusNotFound,
	)
	ErrPolicyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A policy with this name already exists",
		http.StatusConflict,
	)
	ErrNotPDF = apperror.New(
		apperror.CodeValidation,
		"Policy file must be a PDF",
		http.StatusBadRequest,
	)
	ErrFileMissing = apperror.New(
		apperror.CodeNotFound,
		"Policy file is no longer available",
		http.StatusNotFound,
	)
)
