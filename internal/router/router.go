package router

import (
	"time"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/config"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/handler"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/middleware"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/repository"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	profileRepo := repository.NewProfileRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	directorySvc := service.NewDirectoryService(profileRepo, rdb, cfg.ProfileCacheTTL())
	registerSvc := service.NewRegisterService(registerRepo, supplierRepo, cfg.Location())
	supplierSvc := service.NewSupplierService(supplierRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	registerH := handler.NewRegisterHandler(registerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret, directorySvc))
	{
		closers := middleware.Require(middleware.CanCloseRegister)
		managers := middleware.Require(middleware.IsManager)
		admins := middleware.Require(middleware.IsAdmin)

		reg := v1.Group("/register")
		{
			reg.GET("/access", registerH.Access)
			reg.GET("/opening-float", closers, registerH.OpeningFloat)
			reg.GET("/today", closers, registerH.Today)
			reg.POST("/closings", closers, registerH.Submit)

			reg.GET("/closings", managers, registerH.List)
			reg.GET("/closings/:id", managers, registerH.Get)
			reg.PATCH("/closings/:id/review", managers, registerH.Review)
			reg.DELETE("/closings/:id", admins, registerH.Delete)

			reg.GET("/reports/supplier-payments", managers, registerH.SupplierPaymentsReport)
			reg.GET("/reports/expenses", managers, registerH.ExpensesReport)
		}

		// The closing form picks suppliers, so closers may read and add them.
		sup := v1.Group("/suppliers")
		{
			pickers := middleware.Require(middleware.CanCloseRegister, middleware.IsManager)
			sup.GET("", pickers, suppliersH.List)
			sup.POST("", pickers, suppliersH.Create)
			sup.PUT("/:id", managers, suppliersH.Update)
			sup.DELETE("/:id", managers, suppliersH.Deactivate)
		}
	}

	// Swagger UI outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
