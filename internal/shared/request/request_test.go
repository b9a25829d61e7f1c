package request_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/scope"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestParseID(t *testing.T) {
	c := newContext("/tasks/12")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, err := request.ParseID(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, int64(12), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, err = request.ParseID(c, "id")
	assert.ErrorIs(t, err, request.ErrInvalidID)

	c.Params = gin.Params{{Key: "id", Value: "-3"}}
	_, err = request.ParseID(c, "id")
	assert.Error(t, err)
}

func TestPage(t *testing.T) {
	assert.Equal(t, 3, request.Page(newContext("/leaves?page=3")))
	assert.Equal(t, 1, request.Page(newContext("/leaves?page=0")))
	assert.Equal(t, 1, request.Page(newContext("/leaves?page=x")))
	assert.Equal(t, 1, request.Page(newContext("/leaves")))
	assert.Equal(t, scope.MaxPage, request.Page(newContext("/leaves?page=9223372036854775807")))
}

func TestActor(t *testing.T) {
	c := newContext("/me")
	_, err := request.Actor(c)
	assert.Error(t, err)

	c.Set(request.ActorKey, contextutil.Actor{EmployeeID: 4, Role: contextutil.RoleEmployee})
	actor, err := request.Actor(c)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), actor.EmployeeID)
}
