package expense

import (
	"errors"

	expenseerrors "go-worktrack/internal/expense/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return expenseerrors.ErrExpenseNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_expense_type_name" {
		return expenseerrors.ErrExpenseTypeAlreadyExists
	}

	return err
}

func mapTypeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return expenseerrors.ErrExpenseTypeNotFound
	}
	return mapRepositoryError(err)
}
