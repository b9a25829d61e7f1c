package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts login/logout publicly and the rest behind session.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, session, loginLimiter gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", loginLimiter, handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", session, handler.Me)
		auth.PUT("/password", session, handler.ChangePassword)
	}
}
