package app

import (
	"database/sql"

	"go-worktrack/internal/asset"
	"go-worktrack/internal/auth"
	"go-worktrack/internal/career"
	"go-worktrack/internal/config"
	"go-worktrack/internal/employee"
	"go-worktrack/internal/expense"
	"go-worktrack/internal/leave"
	"go-worktrack/internal/messaging/kafka"
	"go-worktrack/internal/middleware"
	"go-worktrack/internal/notification"
	"go-worktrack/internal/policy"
	"go-worktrack/internal/project"
	"go-worktrack/internal/rbac"
	"go-worktrack/internal/rbac/infra"
	"go-worktrack/internal/shared/counter"
	"go-worktrack/internal/shared/storage"
	"go-worktrack/internal/task"
	"go-worktrack/internal/wiki"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type modules struct {
	employee employee.Service
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	store storage.Store,
	logger *zap.Logger,
) (*modules, error) {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	assetRepo := asset.NewRepository(gormDB)
	wikiRepo := wiki.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	careerRepo := career.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, auth.NewRedisSessionStore(rdb), auth.Config{
		Secret:     []byte(cfg.Auth.SessionSecret),
		SessionTTL: cfg.Auth.SessionTTL,
	}, logger)
	employeeService := employee.NewService(db, employeeRepo, rdb, store, logger)
	projectService := project.NewService(db, projectRepo, logger)
	taskService := task.NewService(db, taskRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, rdb, logger)
	expenseService := expense.NewService(db, expenseRepo, outboxRepo, store, logger)
	assetService := asset.NewService(db, assetRepo, counterRepo, logger)
	wikiService := wiki.NewService(wikiRepo, store, logger)
	policyService := policy.NewService(db, policyRepo, store, logger)
	careerService := career.NewService(careerRepo, store, logger)
	notificationService := notification.NewService(notificationRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
		TTL:    cfg.Auth.SessionTTL,
	}, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	projectHandler := project.NewHandler(projectService, logger)
	taskHandler := task.NewHandler(taskService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	expenseHandler := expense.NewHandler(expenseService, logger)
	assetHandler := asset.NewHandler(assetService, logger)
	wikiHandler := wiki.NewHandler(wikiService, logger)
	policyHandler := policy.NewHandler(policyService, logger)
	careerHandler := career.NewHandler(careerService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)

	// --- Middleware ---
	session := middleware.Session(authService, cfg.Auth.CookieName)
	loginLimiter := middleware.RateLimitByIP(rate.Limit(float64(cfg.Auth.LoginRatePerMin)/60), cfg.Auth.LoginBurst)
	idempotency := middleware.Idempotency(rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, session, loginLimiter)

	protected := api.Group("", session, middleware.ContextLogger(logger))
	{
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		project.RegisterRoutes(protected, projectHandler, rbacService)
		task.RegisterRoutes(protected, taskHandler, rbacService)
		leave.RegisterRoutes(protected, leaveHandler, rbacService, idempotency)
		expense.RegisterRoutes(protected, expenseHandler, rbacService, idempotency)
		asset.RegisterRoutes(protected, assetHandler, rbacService)
		wiki.RegisterRoutes(protected, wikiHandler, rbacService)
		policy.RegisterRoutes(protected, policyHandler, rbacService)
		career.RegisterRoutes(protected, careerHandler, rbacService)
		notification.RegisterRoutes(protected, notificationHandler, rbacService)
	}

	return &modules{employee: employeeService}, nil
}
