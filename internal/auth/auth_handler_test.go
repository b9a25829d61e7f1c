package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-worktrack/internal/auth"
	autherrors "go-worktrack/internal/auth/errors"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/request"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	loginFn          func(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error)
	logoutFn         func(ctx context.Context, token string) error
	meFn             func(ctx context.Context, actor contextutil.Actor) (auth.AuthResponse, error)
	changePasswordFn func(ctx context.Context, actor contextutil.Actor, req auth.ChangePasswordRequest) error
}

func (f *fakeService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeService) Logout(ctx context.Context, token string) error {
	return f.logoutFn(ctx, token)
}

func (f *fakeService) Resolve(ctx context.Context, token string) (contextutil.Actor, error) {
	return contextutil.Actor{}, nil
}

func (f *fakeService) Me(ctx context.Context, actor contextutil.Actor) (auth.AuthResponse, error) {
	return f.meFn(ctx, actor)
}

func (f *fakeService) ChangePassword(ctx context.Context, actor contextutil.Actor, req auth.ChangePasswordRequest) error {
	return f.changePasswordFn(ctx, actor, req)
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
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

func setupAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := auth.NewHandler(svc, auth.CookieConfig{Name: "wt_session", TTL: time.Hour})
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	withActor := func(c *gin.Context) {
		c.Set(request.ActorKey, contextutil.Actor{EmployeeID: 7, Role: "emp"})
	}
	r.GET("/auth/me", withActor, h.Me)
	r.PUT("/auth/password", withActor, h.ChangePassword)
	return r
}

func TestHandler_Login(t *testing.T) {
	t.Run("sets session cookie", func(t *testing.T) {
		svc := &fakeService{
			loginFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error) {
				assert.Equal(t, "asha@corp.test", req.Identifier)
				return auth.LoginResult{Token: "signed", ExpiresAt: time.Now().Add(time.Hour), User: auth.AuthResponse{ID: 7}}, nil
			},
		}
		body, _ := json.Marshal(auth.LoginRequest{Identifier: "asha@corp.test", Password: "secret1"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		setupAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, "wt_session", cookies[0].Name)
		assert.Equal(t, "signed", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeService{
			loginFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error) {
				return auth.LoginResult{}, autherrors.ErrInvalidCredentials
			},
		}
		body, _ := json.Marshal(auth.LoginRequest{Identifier: "x", Password: "y"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		setupAuthRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decode(t, w)
		assert.False(t, env.OK)
		assert.Equal(t, autherrors.ErrInvalidCredentials.Message, env.Error.Message)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("missing fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"identifier":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		setupAuthRouter(&fakeService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	var got string
	svc := &fakeService{logoutFn: func(ctx context.Context, token string) error {
		got = token
		return nil
	}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "wt_session", Value: "signed"})

	setupAuthRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed", got)
	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestHandler_MeAndPassword(t *testing.T) {
	svc := &fakeService{
		meFn: func(ctx context.Context, actor contextutil.Actor) (auth.AuthResponse, error) {
			return auth.AuthResponse{ID: actor.EmployeeID, FirstName: "Asha"}, nil
		},
		changePasswordFn: func(ctx context.Context, actor contextutil.Actor, req auth.ChangePasswordRequest) error {
			return autherrors.ErrWrongPassword
		},
	}
	r := setupAuthRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var me auth.AuthResponse
	assert.NoError(t, json.Unmarshal(decode(t, w).Data, &me))
	assert.Equal(t, int64(7), me.ID)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewBufferString(`{"old_password":"a","new_password":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewBufferString(`{"old_password":"a","new_password":"abcdef"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, autherrors.ErrWrongPassword.Message, decode(t, w).Error.Message)
}
