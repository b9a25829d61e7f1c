package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter keeps one token bucket per key (client IP or employee id).
type KeyedRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	limiter, exists := k.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}

	return limiter
}

func tooManyRequests(c *gin.Context, message string) {
	response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequests, message, nil)
	c.Abort()
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			tooManyRequests(c, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser throttles authenticated employees; anonymous requests pass through.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		actor, err := request.Actor(c)
		if err != nil {
			c.Next()
			return
		}
		if !limiter.GetLimiter(strconv.FormatInt(actor.EmployeeID, 10)).Allow() {
			tooManyRequests(c, "Too many requests from this user")
			return
		}
		c.Next()
	}
}
