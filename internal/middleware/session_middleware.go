package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// SessionResolver turns a session token into the actor it belongs to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (contextutil.Actor, error)
}

// Session authenticates the request from the session cookie (or a Bearer
// header for API clients) and stores the actor on both contexts.
func Session(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if t, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
			token = t
		}
		if token == "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie
			}
		}

		if token == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Login required", nil)
			c.Abort()
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set(request.ActorKey, actor)
		c.Request = c.Request.WithContext(contextutil.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}
