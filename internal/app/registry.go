package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/andreicionca/motivare-absente/internal/auth"
	"github.com/andreicionca/motivare-absente/internal/config"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/media"
	"github.com/andreicionca/motivare-absente/internal/messaging/kafka"
	"github.com/andreicionca/motivare-absente/internal/middleware"
	"github.com/andreicionca/motivare-absente/internal/rbac"
	"github.com/andreicionca/motivare-absente/internal/rbac/infra"
	"github.com/andreicionca/motivare-absente/internal/request"
	"github.com/andreicionca/motivare-absente/internal/school"
	"github.com/andreicionca/motivare-absente/internal/shared/apperror"
	"github.com/andreicionca/motivare-absente/internal/shared/lock"
	"github.com/andreicionca/motivare-absente/internal/shared/response"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Use installs the middleware every route shares.
func Use(router *gin.Engine, logger *zap.Logger) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(middleware.MethodNotAllowed())
	router.NoRoute(middleware.NotFound())
	router.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
	)
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()
	Use(router, logger)

	// --- Repositories ---
	schoolRepo := school.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	excuseRepo := excuse.NewRepository(gormDB)
	shortLeaveRepo := shortleave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPolicy(), logger)
	if err != nil {
		return err
	}

	mediaClient, err := media.NewCloudinaryClient(cfg.CloudName, cfg.APIKey, cfg.APISecret, cfg.UploadFolder)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(schoolRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	holidayService := holiday.NewService(holidayRepo, logger)
	mediaService := media.NewService(mediaClient, logger)
	excuseService := excuse.NewService(db, excuseRepo, holidayService, cfg.HoursPerSchoolDay, cfg.UploadFolder, logger)
	shortLeaveService := shortleave.NewService(db, shortLeaveRepo, logger)
	requestService := request.NewService(
		db,
		excuseRepo,
		shortLeaveRepo,
		schoolRepo,
		holidayService,
		outboxRepo,
		lock.NewRedisLock(rdb),
		request.Settings{
			HoursPerDay:  cfg.HoursPerSchoolDay,
			QuotaCeiling: cfg.AnnualQuotaHours,
			LockTTL:      cfg.FinalizeLock,
		},
		logger,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), int(cfg.TokenTTL.Seconds()))
	holidayHandler := holiday.NewHandler(holidayService, logger)
	mediaHandler := media.NewHandler(mediaService, cfg.MaxUploadBytes)
	excuseHandler := excuse.NewHandler(excuseService)
	shortLeaveHandler := shortleave.NewHandler(shortLeaveService)
	requestHandler := request.NewHandler(requestService)
	rbacHandler := rbac.NewHandler(rbacService)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	idempotency := middleware.Idempotency(rdb, cfg.IdempotencyTTL, logger)

	router.GET("/ping", ping(db))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMiddleware)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, authMiddleware)
		media.RegisterRoutes(api, mediaHandler, rbacService, authMiddleware)
		excuse.RegisterRoutes(api, excuseHandler, rbacService, authMiddleware, idempotency)
		shortleave.RegisterRoutes(api, shortLeaveHandler, rbacService, authMiddleware, idempotency)
		request.RegisterRoutes(api, requestHandler, rbacService, authMiddleware, idempotency)
		rbac.RegisterRoutes(api, rbacHandler, authMiddleware)
	}

	return nil
}

// Pinger is the part of *sql.DB the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func ping(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeUpstream, err.Error(), nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"message": "pong"}, nil)
	}
}
