package notificationerrors

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
)

var ErrNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"Notification not found",
	http.StatusNotFound,
)
