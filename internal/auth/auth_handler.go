package auth

import (
	"net/http"
	"strings"
	"time"

	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Handler struct {
	service Service
	cookie  CookieConfig
	logger  *zap.Logger
}

func NewHandler(s Service, cookie CookieConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	if cookie.Name == "" {
		cookie.Name = "wt_session"
	}
	return &Handler{service: s, cookie: cookie, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) token(c *gin.Context) string {
	if t, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && t != "" {
		return t
	}
	t, _ := c.Cookie(h.cookie.Name)
	return t
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setCookie(c, res.Token, int(time.Until(res.ExpiresAt).Seconds()))
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), h.token(c)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	res, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), actor, req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}
