package auth_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-worktrack/internal/auth"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	store := auth.NewRedisSessionStore(rdb)

	session := auth.Session{ID: "sid-1", EmployeeID: 4, FirstName: "Meera", Role: "emp"}
	payload, _ := json.Marshal(session)

	mock.ExpectSet(auth.SessionKey("sid-1"), payload, 2*time.Hour).SetVal("OK")
	assert.NoError(t, store.Save(ctx, session, 2*time.Hour))

	mock.ExpectGet(auth.SessionKey("sid-1")).SetVal(string(payload))
	got, err := store.Get(ctx, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, session.EmployeeID, got.EmployeeID)

	mock.ExpectGet(auth.SessionKey("missing")).RedisNil()
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	mock.ExpectDel(auth.SessionKey("sid-1")).SetVal(1)
	assert.NoError(t, store.Delete(ctx, "sid-1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
