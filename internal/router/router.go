package router

import (
	"net/http"
	"time"

	"ebdadmin/config"
	"ebdadmin/internal/handler"
	"ebdadmin/internal/middleware"
	"ebdadmin/internal/repository"
	"ebdadmin/internal/service"
	"ebdadmin/internal/ws"
	"ebdadmin/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	feedHub := ws.NewFeedHub()
	feedHub.Attach(regRepo)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	lockGate := service.NewLockGate(settingRepo)
	regSvc := service.NewRegistrationService(regRepo, lockGate, cloud)
	reportSvc := service.NewReportService(regRepo, studentRepo, classRepo)
	attendanceSvc := service.NewAttendanceService(studentRepo, classRepo, regRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	classHandler := handler.NewClassHandler(classRepo)
	studentHandler := handler.NewStudentHandler(studentRepo, attendanceSvc)
	regHandler := handler.NewRegistrationHandler(cfg, regRepo, regSvc, classRepo, cloud)
	reportHandler := handler.NewReportHandler(reportSvc)
	settingHandler := handler.NewSettingHandler(lockGate)

	authMw := middleware.AuthRequired(&cfg.JWT)

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.GET("/me", authMw, authHandler.Me)
		}

		admin := api.Group("")
		admin.Use(authMw)
		{
			admin.GET("/classes", classHandler.List)
			admin.POST("/classes", classHandler.Create)
			admin.PUT("/classes/:id", classHandler.Update)

			admin.GET("/students", studentHandler.List)
			admin.POST("/students", studentHandler.Create)
			admin.PUT("/students/:id", studentHandler.Update)
			admin.PATCH("/students/:id/active", studentHandler.SetActive)
			admin.DELETE("/students/:id", studentHandler.Delete)
			admin.GET("/students/:id/history", studentHandler.History)

			admin.GET("/registrations", regHandler.List)
			admin.GET("/registrations/active", regHandler.Active)
			admin.GET("/registrations/today", regHandler.TodayStatus)
			admin.POST("/registrations", regHandler.Submit)
			admin.DELETE("/registrations/:id", regHandler.Delete)
			admin.GET("/registrations/:id/receipts", regHandler.Receipts)

			admin.GET("/reports/daily", reportHandler.Daily)

			admin.GET("/settings/lock", settingHandler.LockStatus)
			admin.PUT("/settings/lock", settingHandler.SetLock)
		}
	}

	r.GET("/ws/registrations", ws.UpgradeFeed(&cfg.JWT, feedHub))

	return r
}
