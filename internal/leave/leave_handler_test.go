package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-worktrack/internal/leave"
	leaveerrors "go-worktrack/internal/leave/errors"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/request"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	leave.Service
	decideFn func(ctx context.Context, actor contextutil.Actor, id int64, req leave.DecideRequest) (leave.LeaveResponse, error)
	listFn   func(ctx context.Context, q leave.ListQuery, page int) ([]leave.LeaveResponse, int64, error)
}

func (f *fakeService) Decide(ctx context.Context, actor contextutil.Actor, id int64, req leave.DecideRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, actor, id, req)
}

func (f *fakeService) List(ctx context.Context, q leave.ListQuery, page int) ([]leave.LeaveResponse, int64, error) {
	return f.listFn(ctx, q, page)
}

func newRouter(svc leave.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(request.ActorKey, admin) })
	r.GET("/leaves", h.List)
	r.PUT("/leaves/:id/decision", h.Decide)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error.Code
}

func decideRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/leaves/12/decision", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Decide(t *testing.T) {
	t.Run("already processed", func(t *testing.T) {
		svc := &fakeService{decideFn: func(ctx context.Context, actor contextutil.Actor, id int64, req leave.DecideRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, int64(12), id)
			assert.Equal(t, int64(1), actor.EmployeeID)
			return leave.LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
		}}
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, decideRequest(`{"status":"approved"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ALREADY_PROCESSED", decodeError(t, w))
	})

	t.Run("status outside approved or rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeService{}).ServeHTTP(w, decideRequest(`{"status":"pending"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w))
	})
}

func TestHandler_List(t *testing.T) {
	svc := &fakeService{listFn: func(ctx context.Context, q leave.ListQuery, page int) ([]leave.LeaveResponse, int64, error) {
		assert.Equal(t, int64(4), q.EmployeeID)
		assert.Equal(t, "employee", q.SortBy)
		assert.Equal(t, 2, page)
		return []leave.LeaveResponse{}, 12, nil
	}}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves?employee_id=4&sort_by=employee&page=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Meta struct {
			TotalPages int `json:"totalPages"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 2, env.Meta.TotalPages)
}
