package notification

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead),
			handler.ListOwn,
		)
		notifications.PUT("/:id/read",
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate),
			handler.MarkRead,
		)
	}
}
