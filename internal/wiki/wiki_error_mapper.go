package wiki

import (
	"errors"

	wikierrors "go-worktrack/internal/wiki/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapCategoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wikierrors.ErrCategoryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_wiki_category_name":
			return wikierrors.ErrCategoryAlreadyExists
		case pgErr.Code == "23503" && pgErr.ConstraintName == "wiki_pages_category_id_fkey":
			return wikierrors.ErrCategoryHasPages
		}
	}
	return err
}

func mapPageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wikierrors.ErrPageNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && pgErr.ConstraintName == "wiki_pages_category_id_fkey" {
		return wikierrors.ErrCategoryNotFound
	}
	return err
}
