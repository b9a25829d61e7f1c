package notification_test

import (
	"context"
	"testing"
	"time"

	"go-worktrack/internal/notification"
	"go-worktrack/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create_IgnoresDuplicateEvent(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := notification.NewRepository(gdb)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO "notifications" .* ON CONFLICT \("event_id"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "notifications" .* ON CONFLICT \("event_id"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	first := &notification.Notification{EmployeeID: 7, EventID: "evt-1", Kind: "leave", ReferenceID: 12, Message: "m"}
	created, err := repo.Create(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(10), first.ID)

	again := &notification.Notification{EmployeeID: 7, EventID: "evt-1", Kind: "leave", ReferenceID: 12, Message: "m"}
	created, err = repo.Create(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRepository_MarkRead(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := notification.NewRepository(gdb)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE "notifications" SET "read_at"=\$1 WHERE id = \$2 AND employee_id = \$3 AND read_at IS NULL`).
		WithArgs(at, int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkRead(context.Background(), 3, 7, at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
