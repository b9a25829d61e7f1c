package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-worktrack/internal/employee"
	employeeerrors "go-worktrack/internal/employee/errors"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/request"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	employee.Service
	getAllFn    func(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error)
	createFn    func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	deleteFn    func(ctx context.Context, id int64) error
	getProfile  func(ctx context.Context, id int64) (employee.ProfileResponse, error)
	emergencyFn func(ctx context.Context, actor contextutil.Actor, req employee.EmergencyContactRequest) (employee.ProfileResponse, error)
}

func (f *fakeService) GetAll(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeService) GetProfile(ctx context.Context, id int64) (employee.ProfileResponse, error) {
	return f.getProfile(ctx, id)
}

func (f *fakeService) UpdateOwnEmergencyContact(ctx context.Context, actor contextutil.Actor, req employee.EmergencyContactRequest) (employee.ProfileResponse, error) {
	return f.emergencyFn(ctx, actor, req)
}

type envelope struct {
	OK   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"pageSize"`
	} `json:"meta"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func setupRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := employee.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(request.ActorKey, contextutil.Actor{EmployeeID: 11, Role: contextutil.RoleEmployee})
	})
	r.GET("/employees", h.GetAll)
	r.POST("/employees", h.Create)
	r.DELETE("/employees/:id", h.Delete)
	r.GET("/profile/me", h.GetOwnProfile)
	r.PUT("/profile/me/emergency", h.UpdateOwnEmergencyContact)
	return r
}

func TestHandler_GetAll(t *testing.T) {
	svc := &fakeService{
		getAllFn: func(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
			assert.Equal(t, "asha", filter.Query)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, employee.DefaultPageSize, filter.PageSize)
			return []employee.EmployeeResponse{{ID: 1, FullName: "Asha Rao"}}, 11, nil
		},
	}
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=asha&page=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.OK)
	assert.Equal(t, int64(11), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestHandler_Create_ValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(`{"first_name":"A","last_name":"B","phone_no":"1","email":"not-an-email","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")

	setupRouter(&fakeService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Email is invalid", env.Error.Message)
}

func TestHandler_Delete(t *testing.T) {
	svc := &fakeService{deleteFn: func(ctx context.Context, id int64) error {
		assert.Equal(t, int64(4), id)
		return employeeerrors.ErrEmployeeHasTasks
	}}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/4", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HAS_DEPENDENTS", decode(t, w).Error.Code)

	w = httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_OwnProfile(t *testing.T) {
	svc := &fakeService{
		getProfile: func(ctx context.Context, id int64) (employee.ProfileResponse, error) {
			return employee.ProfileResponse{EmployeeID: id}, nil
		},
		emergencyFn: func(ctx context.Context, actor contextutil.Actor, req employee.EmergencyContactRequest) (employee.ProfileResponse, error) {
			return employee.ProfileResponse{}, employeeerrors.ErrEmergencyAlreadyUpdated
		},
	}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile/me", nil))
	var p employee.ProfileResponse
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &p))
	assert.Equal(t, int64(11), p.EmployeeID)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/profile/me/emergency", bytes.NewBufferString(`{"emergency_contact_name":"R","emergency_contact_no":"9","emergency_relation":"Sister"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_PROCESSED", decode(t, w).Error.Code)
}
