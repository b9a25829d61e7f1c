package employee

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
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployeeOption, rbac.ActionRead),
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionCreate),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionDelete),
			handler.Delete,
		)

		employees.DELETE("",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionPurge),
			handler.BulkDelete,
		)

		employees.GET("/:id/profile",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionRead),
			handler.GetProfile,
		)

		employees.PUT("/:id/profile",
			middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionUpdate),
			handler.UpsertProfile,
		)
	}

	profile := r.Group("/profile")
	{
		profile.GET("/me",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnProfile, rbac.ActionRead),
			handler.GetOwnProfile,
		)
		profile.PUT("/me/emergency",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnProfile, rbac.ActionUpdate),
			handler.UpdateOwnEmergencyContact,
		)
	}

	r.GET("/celebrations",
		middleware.RBACAuthorize(rbacService, rbac.ResourceCelebration, rbac.ActionRead),
		handler.Celebrations,
	)
}
