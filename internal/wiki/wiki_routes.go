package wiki

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	w := r.Group("/wiki")

	categories := w.Group("/categories")
	{
		categories.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionRead),
			handler.ListCategories,
		)
		categories.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionCreate),
			handler.CreateCategory,
		)
		categories.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionUpdate),
			handler.UpdateCategory,
		)
		categories.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionDelete),
			handler.DeleteCategory,
		)
	}

	pages := w.Group("/pages")
	{
		pages.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionRead),
			handler.ListPages,
		)
		pages.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionRead),
			handler.GetPage,
		)
		pages.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionCreate),
			handler.CreatePage,
		)
		pages.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionUpdate),
			handler.UpdatePage,
		)
		pages.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionDelete),
			handler.DeletePage,
		)
	}

	views := w.Group("/views")
	{
		views.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionAnalytics),
			handler.Views,
		)
		views.GET("/counts",
			middleware.RBACAuthorize(rbacService, rbac.ResourceWiki, rbac.ActionAnalytics),
			handler.ViewCounts,
		)
	}
}
