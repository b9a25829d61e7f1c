package asset

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	assets := r.Group("/assets")
	{
		assets.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionRead),
			handler.List,
		)
		assets.GET("/mine",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnAsset, rbac.ActionRead),
			handler.MyAssets,
		)
		assets.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionRead),
			handler.GetByID,
		)
		assets.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionCreate),
			handler.Create,
		)
		assets.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionUpdate),
			handler.Update,
		)
		assets.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionDelete),
			handler.Delete,
		)
	}

	allocations := r.Group("/asset-allocations")
	{
		allocations.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionRead),
			handler.ListAllocations,
		)
		allocations.GET("/employees/:employee_id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionRead),
			handler.History,
		)
		allocations.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionAllocate),
			handler.Allocate,
		)
		allocations.PUT("/:id/return",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionAllocate),
			handler.Return,
		)
		allocations.POST("/:id/issues",
			middleware.RateLimitByUser(0.2, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnAsset, rbac.ActionReport),
			handler.ReportIssue,
		)
	}

	r.PUT("/asset-issues/:id/resolve",
		middleware.RBACAuthorize(rbacService, rbac.ResourceAsset, rbac.ActionResolve),
		handler.ResolveIssue,
	)
}
