package project

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
	projects := r.Group("/projects")
	{
		projects.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProject, rbac.ActionRead),
			handler.GetAll,
		)
		projects.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProject, rbac.ActionRead),
			handler.GetById,
		)
		projects.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProject, rbac.ActionCreate),
			handler.Create,
		)
		projects.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProject, rbac.ActionUpdate),
			handler.Update,
		)
		projects.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProject, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
