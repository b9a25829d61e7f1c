package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"
	"go-worktrack/internal/rbac/infra"
	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type fakeResolver struct {
	actor contextutil.Actor
	err   error
	got   string
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (contextutil.Actor, error) {
	f.got = token
	return f.actor, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeCode(t *testing.T, body []byte) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(body, &env))
	return env.Error.Code
}

func TestSession(t *testing.T) {
	actor := contextutil.Actor{EmployeeID: 9, FirstName: "Ravi", Role: contextutil.RoleEmployee}

	newRouter := func(res *fakeResolver) *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.Session(res, "wt_session"), func(c *gin.Context) {
			a, err := request.Actor(c)
			assert.NoError(t, err)
			fromCtx, ok := contextutil.GetActor(c.Request.Context())
			assert.True(t, ok)
			assert.Equal(t, a, fromCtx)
			c.JSON(http.StatusOK, a)
		})
		return r
	}

	t.Run("cookie token", func(t *testing.T) {
		res := &fakeResolver{actor: actor}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "wt_session", Value: "cookie-token"})

		newRouter(res).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cookie-token", res.got)
	})

	t.Run("bearer token wins", func(t *testing.T) {
		res := &fakeResolver{actor: actor}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: "wt_session", Value: "cookie-token"})

		newRouter(res).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "header-token", res.got)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeResolver{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperror.CodeUnauthorized, decodeCode(t, w.Body.Bytes()))
	})

	t.Run("resolver rejects", func(t *testing.T) {
		res := &fakeResolver{err: apperror.New(apperror.CodeUnauthorized, "Session expired", http.StatusUnauthorized)}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "wt_session", Value: "stale"})

		newRouter(res).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRBACAuthorize(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)

	run := func(actor *contextutil.Actor) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/leaves/:id/decision",
			func(c *gin.Context) {
				if actor != nil {
					c.Set(request.ActorKey, *actor)
				}
			},
			middleware.RBACAuthorize(svc, rbac.ResourceLeave, rbac.ActionDecide),
			func(c *gin.Context) { c.Status(http.StatusNoContent) },
		)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/decision", nil))
		return w
	}

	assert.Equal(t, http.StatusNoContent, run(&contextutil.Actor{EmployeeID: 1, Role: contextutil.RoleAdmin}).Code)

	w := run(&contextutil.Actor{EmployeeID: 2, Role: contextutil.RoleEmployee})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperror.CodeForbidden, decodeCode(t, w.Body.Bytes()))

	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.POST("/login", middleware.RateLimitByIP(rate.Every(time.Hour), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/ping", middleware.RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "rid-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-123", w.Body.String())
	assert.Equal(t, "rid-123", w.Header().Get(middleware.HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Body.String())
}

func TestIdempotency(t *testing.T) {
	actor := contextutil.Actor{EmployeeID: 4, Role: contextutil.RoleEmployee}
	const cacheKey = "idemp:/leaves:4:key-1"

	newRouter := func(rdb *redis.Client, calls *int) *gin.Engine {
		r := gin.New()
		r.POST("/leaves",
			func(c *gin.Context) { c.Set(request.ActorKey, actor) },
			middleware.Idempotency(rdb, zap.NewNop()),
			func(c *gin.Context) {
				*calls++
				response.Success(c, http.StatusCreated, gin.H{"id": 1}, nil)
			},
		)
		return r
	}

	t.Run("first request runs handler and stores response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "1", 30*time.Second).SetVal(true)
		mock.Regexp().ExpectSet(cacheKey, `"status":201`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		calls := 0
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(middleware.HeaderIdempotencyKey, "key-1")
		newRouter(rdb, &calls).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay skips handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true,"data":{"id":1}}}`)

		calls := 0
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(middleware.HeaderIdempotencyKey, "key-1")
		newRouter(rdb, &calls).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 0, calls)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.JSONEq(t, `{"ok":true,"data":{"id":1}}`, w.Body.String())
	})

	t.Run("in-flight duplicate is refused", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "1", 30*time.Second).SetVal(false)

		calls := 0
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set(middleware.HeaderIdempotencyKey, "key-1")
		newRouter(rdb, &calls).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperror.CodeProcessing, decodeCode(t, w.Body.Bytes()))
		assert.Equal(t, 0, calls)
	})

	t.Run("no key passes through", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		calls := 0
		w := httptest.NewRecorder()
		newRouter(rdb, &calls).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})
}
