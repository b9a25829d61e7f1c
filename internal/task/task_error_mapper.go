package task

import (
	"errors"

	taskerrors "go-worktrack/internal/task/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		switch pgErr.ConstraintName {
		case "tasks_project_id_fkey":
			return taskerrors.ErrProjectNotFound
		case "tasks_employee_id_fkey":
			return taskerrors.ErrEmployeeNotFound
		}
	}

	return err
}
