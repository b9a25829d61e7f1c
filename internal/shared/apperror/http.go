package apperror

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP resolves any error into the status/code/message triple sent to clients.
// Errors that are not AppErrors are reported as a generic internal error.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		err = MapValidationError(verrs)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return HTTPError{
			Status:  status,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
