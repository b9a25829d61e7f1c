package asset

import (
	"errors"

	asseterrors "go-worktrack/internal/asset/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asseterrors.ErrAssetNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		switch pgErr.ConstraintName {
		case "asset_allocations_asset_id_fkey":
			return asseterrors.ErrAssetNotFound
		case "asset_allocations_employee_id_fkey":
			return asseterrors.ErrEmployeeNotFound
		}
	}

	return err
}

// mapDeleteError reports allocation history that still references the asset.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && pgErr.ConstraintName == "asset_allocations_asset_id_fkey" {
		return asseterrors.ErrAssetHasAllocations
	}
	return mapRepositoryError(err)
}

func mapAllocationError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asseterrors.ErrAllocationNotFound
	}
	return mapRepositoryError(err)
}

func mapIssueError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asseterrors.ErrIssueNotFound
	}
	return mapRepositoryError(err)
}
