package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/config"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/handlers"
	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/services"
)

type routerDeps struct {
	cfg         *config.Config
	logger      *logrus.Logger
	db          database.DB
	sessions    middleware.SessionResolver
	authLimiter *services.RateLimitService

	auth          *handlers.AuthHandler
	resources     *handlers.ResourceHandler
	events        *handlers.EventHandler
	salesReports  *handlers.SalesReportHandler
	issues        *handlers.IssueHandler
	hierarchy     *handlers.HierarchyHandler
	notifications *handlers.NotificationHandler
	sales         *handlers.SalesHandler
	admin         *handlers.AdminHandler
}

func setupRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(d.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     d.cfg.CORS.AllowedOrigins,
		AllowMethods:     d.cfg.CORS.AllowedMethods,
		AllowHeaders:     d.cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheckHandler(d.db))

	requireAuth := middleware.AuthMiddleware(d.sessions, d.cfg.Auth.TrustEmployeeHeader)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			public := auth.Group("", middleware.RateLimitMiddleware(d.authLimiter))
			public.POST("/send-otp", d.auth.SendOTP)
			public.POST("/verify-otp", d.auth.VerifyOTP)
			public.POST("/refresh", d.auth.RefreshToken)

			protected := auth.Group("", requireAuth)
			protected.POST("/logout", d.auth.Logout)
			protected.POST("/logout-all", d.auth.LogoutAll)
			protected.GET("/me", d.auth.Me)
		}

		resources := v1.Group("/resources", requireAuth)
		{
			resources.GET("", d.resources.GetAll)
			resources.GET("/summary", d.resources.GetSummary)
			resources.PUT("/:circle/:type", d.resources.UpdateStock)
		}

		events := v1.Group("/events", requireAuth)
		{
			events.POST("", d.events.Create)
			events.GET("", d.events.GetAll)
			events.GET("/my-tasks", d.events.MyTasks)
			events.GET("/:id", d.events.GetDetails)
			events.POST("/:id/team", d.events.AssignTeam)
			events.PATCH("/:id/status", d.events.UpdateStatus)
			events.POST("/:id/sales", d.events.SubmitSales)
			events.POST("/:id/subtasks", d.events.CreateSubtask)
		}
		v1.PATCH("/subtasks/:id/status", requireAuth, d.events.UpdateSubtaskStatus)

		reports := v1.Group("/sales-reports", requireAuth)
		{
			reports.POST("", d.salesReports.Create)
			reports.GET("", d.salesReports.GetAll)
			reports.POST("/:id/approve", d.salesReports.Approve)
			reports.POST("/:id/reject", d.salesReports.Reject)
		}

		issues := v1.Group("/issues", requireAuth)
		{
			issues.POST("", d.issues.Create)
			issues.GET("", d.issues.GetAll)
			issues.PATCH("/:id/status", d.issues.UpdateStatus)
		}

		hierarchy := v1.Group("/hierarchy", requireAuth)
		{
			hierarchy.GET("/:persNo", d.hierarchy.Resolve)
			hierarchy.GET("/:persNo/team", d.hierarchy.Team)
			hierarchy.GET("/:persNo/chain", d.hierarchy.Chain)
		}

		notifications := v1.Group("/notifications", requireAuth)
		{
			notifications.GET("", d.notifications.GetAll)
			notifications.PATCH("/:id/read", d.notifications.MarkAsRead)
			notifications.POST("/read-all", d.notifications.MarkAllAsRead)
			notifications.POST("/push-tokens", d.notifications.RegisterPushToken)
			notifications.GET("/preferences", d.notifications.GetPreferences)
			notifications.PUT("/preferences/:category", d.notifications.UpdatePreference)
		}

		sales := v1.Group("/sales", requireAuth)
		{
			sales.GET("", d.sales.GetAll)
			sales.GET("/type/:type", d.sales.GetByType)
			sales.GET("/finance/collections", d.sales.GetFinanceCollections)
			sales.GET("/finance/summary", d.sales.GetFinanceSummary)
		}

		admin := v1.Group("/admin", requireAuth)
		{
			admin.POST("/employees/:id/link", d.admin.LinkEmployee)

			admin.GET("/reports/olt", d.admin.OltReport)
			admin.GET("/reports/kam", d.admin.KamReport)
			admin.GET("/reports/kam/:persNo/accounts", d.admin.KamAccounts)

			admin.POST("/import/olt", d.admin.ImportOlt)
			admin.POST("/import/employee-master", d.admin.ImportEmployeeMaster)

			jobs := admin.Group("/jobs", middleware.RequireAction(authz.EventsManage))
			jobs.GET("", d.admin.JobStatus)
			jobs.POST("/event-lifecycle", d.admin.RunEventLifecycle)

			admin.POST("/cache/finance/invalidate", middleware.RequireAction(authz.AdminReports), d.admin.InvalidateFinanceCache)
		}
	}

	return router
}
