package leave_test

import (
	"context"
	"testing"
	"time"

	"go-worktrack/internal/leave"
	"go-worktrack/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRepository_Decide_OnlyTouchesPending(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := leave.NewRepository(gdb)

	mock.ExpectExec(`UPDATE "leave_requests" SET "comments"=\$1,"manager_id"=\$2,"status"=\$3 WHERE id = \$4 AND status = \$5`).
		WithArgs("ok", int64(1), leave.StatusApproved, int64(12), leave.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Decide(context.Background(), 12, leave.StatusApproved, 1, "ok")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRepository_Summary_OuterJoinsEveryEmployee(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := leave.NewRepository(gdb)

	mock.ExpectQuery(`FROM employees e\s+LEFT JOIN leave_requests lr ON lr\.employee_id = e\.id AND lr\.leave_type_id = \$1\s+GROUP BY`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "first_name", "last_name", "total_days"}).
			AddRow(1, "Ada", "Lovelace", 4).
			AddRow(2, "Bob", "Stone", 0))

	rows, err := repo.Summary(context.Background(), leave.SummaryFilter{LeaveTypeID: 3})
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(0), rows[1].TotalDays)
}

func TestRepository_DeleteOwned(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := leave.NewRepository(gdb)

	mock.ExpectExec(`DELETE FROM "leave_requests" WHERE employee_id = \$1 AND id = \$2`).
		WithArgs(int64(7), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.DeleteOwned(context.Background(), 12, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_FindAll_FiltersAndSorting(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	where := `WHERE lr\.leave_type_id = \$1 AND lr\.status = \$2 AND lr\.start_date >= \$3 AND lr\.end_date <= \$4`

	cases := []struct {
		name    string
		sortBy  string
		sortDir string
		order   string
	}{
		{"unknown key falls back to newest submission", "bogus", "asc", `ORDER BY lr\.inserted_at DESC,lr\.id DESC`},
		{"known key ascending", "start_date", "ASC", `ORDER BY lr\.start_date ASC,lr\.id DESC`},
		{"known key defaults to descending", "employee", "", `ORDER BY e\.first_name DESC,lr\.id DESC`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gdb, _, mock := testdb.New(t)
			repo := leave.NewRepository(gdb)

			mock.ExpectQuery(`SELECT count\(\*\) FROM leave_requests lr .*`+where+`$`).
				WithArgs(int64(3), leave.StatusApproved, from, to).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
			mock.ExpectQuery(`FROM leave_requests lr .*`+where+` `+tc.order+` LIMIT \$5 OFFSET \$6$`).
				WithArgs(int64(3), leave.StatusApproved, from, to, 10, 10).
				WillReturnRows(sqlmock.NewRows([]string{"id", "leave_type_name"}).AddRow(7, "Sick"))

			rows, total, err := repo.FindAll(context.Background(), leave.ListFilter{
				LeaveTypeID: 3,
				Status:      leave.StatusApproved,
				FromDate:    &from,
				ToDate:      &to,
				SortBy:      tc.sortBy,
				SortDir:     tc.sortDir,
				Page:        2,
				PageSize:    10,
			})

			assert.NoError(t, err)
			assert.Equal(t, int64(11), total)
			assert.Len(t, rows, 1)
			assert.Equal(t, "Sick", rows[0].LeaveTypeName)
		})
	}
}
