package policy

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	policies := r.Group("/policies")
	{
		policies.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePolicy, rbac.ActionRead),
			handler.List,
		)
		policies.GET("/:id/download",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePolicy, rbac.ActionRead),
			handler.Download,
		)
		policies.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePolicy, rbac.ActionCreate),
			handler.Upload,
		)
		policies.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePolicy, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
