package policy

import (
	"errors"

	policyerrors "go-worktrack/internal/policy/errors"
	"go-worktrack/internal/shared/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policyerrors.ErrPolicyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_policy_name" {
		return policyerrors.ErrPolicyAlreadyExists
	}

	return err
}

func mapStorageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return policyerrors.ErrFileMissing
	}
	return err
}
