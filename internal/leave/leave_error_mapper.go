package leave

import (
	"errors"

	leaveerrors "go-worktrack/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_type_name" {
		return leaveerrors.ErrLeaveTypeAlreadyExists
	}

	return err
}

func mapTypeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveTypeNotFound
	}
	return mapRepositoryError(err)
}
