package task

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	tasks := r.Group("/tasks")
	{
		tasks.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTask, rbac.ActionRead),
			handler.List,
		)
		tasks.GET("/mine",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnTask, rbac.ActionRead),
			handler.ListOwn,
		)
		tasks.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTask, rbac.ActionRead),
			handler.GetById,
		)
		tasks.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTask, rbac.ActionCreate),
			handler.Create,
		)
		tasks.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTask, rbac.ActionUpdate),
			handler.Update,
		)
		tasks.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTask, rbac.ActionDelete),
			handler.Delete,
		)
		tasks.DELETE("",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTask, rbac.ActionPurge),
			handler.BulkDelete,
		)

		tasks.GET("/:id/details",
			middleware.RBACAuthorize(rbacService, rbac.ResourceTaskDetail, rbac.ActionRead),
			handler.ListDetails,
		)
		tasks.POST("/:id/details",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTaskDetail, rbac.ActionCreate),
			handler.AddDetail,
		)
	}

	r.PUT("/task-details/:id",
		middleware.RBACAuthorize(rbacService, rbac.ResourceTaskDetail, rbac.ActionUpdate),
		handler.EditDetail,
	)
}
