package employee

import (
	"errors"

	employeeerrors "go-worktrack/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_employee_email":
				return employeeerrors.ErrEmployeeAlreadyExists
			case "uq_employee_phone":
				return employeeerrors.ErrPhoneAlreadyExists
			}
		case "23503":
			switch pgErr.ConstraintName {
			case "employee_profiles_reporting_manager_id_fkey":
				return employeeerrors.ErrReportingManagerNotFound
			case "employee_profiles_employee_id_fkey":
				return employeeerrors.ErrEmployeeNotFound
			}
			return employeeerrors.ErrEmployeeHasTasks
		}
	}

	return err
}
