package wiki_test

import (
	"context"
	"testing"

	"go-worktrack/internal/shared/testdb"
	"go-worktrack/internal/wiki"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRepository_SoftDeletePage(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := wiki.NewRepository(gdb)

	mock.ExpectExec(`UPDATE "wiki_pages" SET "row_status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND row_status = \$4`).
		WithArgs(wiki.RowDeleted, sqlmock.AnyArg(), int64(5), wiki.RowActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.SoftDeletePage(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_FindPages_ExcludesDeleted(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := wiki.NewRepository(gdb)

	mock.ExpectQuery(`FROM wiki_pages wp JOIN wiki_categories wc ON wc\.id = wp\.category_id WHERE wp\.row_status = \$1 AND wp\.category_id = \$2`).
		WithArgs(wiki.RowActive, int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "row_status", "category_name"}).
			AddRow(1, "Handbook", wiki.RowActive, "HR"))

	rows, err := repo.FindPages(context.Background(), wiki.PageFilter{CategoryID: 2})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "HR", rows[0].CategoryName)
}
