package scope_test

import (
	"context"
	"regexp"
	"testing"

	"go-worktrack/internal/shared/scope"
	"go-worktrack/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type row struct {
	ID         int64
	EmployeeID int64
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name   string
		page   int
		offset int
	}{
		{"second page", 2, 10},
		{"huge page is clamped", int(^uint(0) >> 1), (scope.MaxPage - 1) * 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gdb, _, mock := testdb.New(t)

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "rows" LIMIT $1 OFFSET $2`)).
				WithArgs(10, tc.offset).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			var out []row
			err := gdb.WithContext(context.Background()).Table("rows").
				Scopes(scope.Paginate(tc.page, 10)).
				Find(&out).Error
			assert.NoError(t, err)
		})
	}

	t.Run("first page has no offset", func(t *testing.T) {
		gdb, _, mock := testdb.New(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "rows" WHERE employee_id = $1 LIMIT $2`)).
			WithArgs(int64(4), 20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		var out []row
		err := gdb.Table("rows").
			Scopes(scope.OwnedBy(4), scope.Paginate(0, 20)).
			Find(&out).Error
		assert.NoError(t, err)
	})
}
