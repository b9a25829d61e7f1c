package autherrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email/phone or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid session",
		http.StatusUnauthorized,
	)
	ErrSessionExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Session expired, please log in again",
		http.StatusUnauthorized,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
	ErrSamePassword = apperror.New(
		apperror.CodeInvalidInput,
		"New password must differ from the current one",
		http.StatusBadRequest,
	)
)
