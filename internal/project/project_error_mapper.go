package project

import (
	"errors"

	projecterrors "go-worktrack/internal/project/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && pgErr.ConstraintName == "tasks_project_id_fkey" {
		return projecterrors.ErrProjectHasTasks
	}

	return err
}
