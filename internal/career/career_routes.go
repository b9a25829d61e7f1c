package career

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	careers := r.Group("/careers")
	{
		careers.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceCareer, rbac.ActionRead),
			handler.List,
		)
		careers.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceCareer, rbac.ActionRead),
			handler.GetByID,
		)
		careers.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceCareer, rbac.ActionCreate),
			handler.Create,
		)
		careers.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceCareer, rbac.ActionUpdate),
			handler.Update,
		)
		careers.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceCareer, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
