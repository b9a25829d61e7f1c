package expense

import (
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	types := r.Group("/expense-types")
	{
		types.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpenseType, rbac.ActionRead),
			handler.ListTypes,
		)
		types.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpenseType, rbac.ActionCreate),
			handler.CreateType,
		)
		types.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpenseType, rbac.ActionUpdate),
			handler.UpdateType,
		)
		types.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpenseType, rbac.ActionDelete),
			handler.DeleteType,
		)
		types.DELETE("",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpenseType, rbac.ActionPurge),
			handler.DeleteAllTypes,
		)
	}

	expenses := r.Group("/expenses")
	{
		expenses.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpense, rbac.ActionRead),
			handler.List,
		)
		expenses.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpense, rbac.ActionExport),
			handler.Export,
		)
		expenses.PUT("/:id/decision",
			middleware.RBACAuthorize(rbacService, rbac.ResourceExpense, rbac.ActionDecide),
			handler.Decide,
		)

		expenses.GET("/mine",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnExpense, rbac.ActionRead),
			handler.ListOwn,
		)
		expenses.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnExpense, rbac.ActionRead),
			handler.GetByID,
		)
		expenses.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnExpense, rbac.ActionCreate),
			idempotency,
			handler.Submit,
		)
		expenses.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceOwnExpense, rbac.ActionDelete),
			handler.DeleteOwn,
		)
	}
}
