package project_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-worktrack/internal/project"
	projecterrors "go-worktrack/internal/project/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	project.Service
	createFn func(ctx context.Context, req project.ProjectRequest) (project.ProjectResponse, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeService) Create(ctx context.Context, req project.ProjectRequest) (project.ProjectResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func newRouter(svc project.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := project.NewHandler(svc)
	r := gin.New()
	r.POST("/projects", h.Create)
	r.DELETE("/projects/:id", h.Delete)
	return r
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error.Code
}

func TestHandler_Create(t *testing.T) {
	svc := &fakeService{createFn: func(ctx context.Context, req project.ProjectRequest) (project.ProjectResponse, error) {
		return project.ProjectResponse{ID: 1, Name: req.Name}, nil
	}}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects",
		bytes.NewBufferString(`{"name":"Apollo","priority":"high","status":"active","start_date":"2024-01-01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString(`{"priority":"high"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestHandler_Delete_HasTasks(t *testing.T) {
	svc := &fakeService{deleteFn: func(ctx context.Context, id int64) error {
		return projecterrors.ErrProjectHasTasks
	}}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/projects/7", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HAS_DEPENDENTS", errorCode(t, w))
}
