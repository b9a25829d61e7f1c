package leave

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts leave types and leave requests. idempotency guards
// submissions against client retries.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	types := r.Group("/leave-types")
	{
		types.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, rbac.ActionRead),
			handler.ListTypes,
		)
		types.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, rbac.ActionCreate),
			handler.CreateType,
		)
		types.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, rbac.ActionUpdate),
			handler.UpdateType,
		)
		types.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, rbac.ActionDelete),
			handler.DeleteType,
		)
		types.DELETE("",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, rbac.ActionPurge),
			handler.DeleteAllTypes,
		)
	}

	leaves := r.Group("/leaves")
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead),
			handler.List,
		)
		leaves.GET("/summary",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReport),
			handler.Summary,
		)
		leaves.PUT("/:id/decision",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide),
			handler.Decide,
		)

		leaves.GET("/mine",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnLeave, rbac.ActionRead),
			handler.ListOwn,
		)
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnLeave, rbac.ActionCreate),
			idempotency,
			handler.Submit,
		)
		leaves.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnLeave, rbac.ActionDelete),
			handler.DeleteOwn,
		)
	}
}
