package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/config"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/handlers"
	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/services"
	"github.com/circleops/salesops-backend/pkg/jwt"
	"github.com/circleops/salesops-backend/pkg/sms"
	"github.com/circleops/salesops-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		gin.SetMode(gin.DebugMode)
	}
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.Info("Starting circle sales operations backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	if err := validator.RegisterBindings(); err != nil {
		logger.Fatalf("Failed to register request validators: %v", err)
	}

	logger.WithField("driver", cfg.Database.Driver).Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	cache := services.NewSummaryCache(cfg.Redis, logger)
	if redisCache, ok := cache.(*services.RedisCache); ok {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.WithError(err).Warn("Redis unreachable, summaries will be computed from the database")
		}
		cancel()
		defer redisCache.Close()
	}

	// Repositories
	employeeRepo := database.NewEmployeeRepository(db)
	refreshTokenRepo := database.NewRefreshTokenRepository(db)
	eventRepo := database.NewEventRepository(db)
	oltRepo := database.NewOltRepository(db)

	// Services
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	var gateway sms.Gateway = sms.NewLogGateway()
	if cfg.SMS.Mode == "production" {
		gateway = sms.NewHTTPGateway(sms.HTTPConfig{
			BaseURL:    cfg.SMS.BaseURL,
			APIKey:     cfg.SMS.APIKey,
			SenderID:   cfg.SMS.SenderID,
			TemplateID: cfg.SMS.TemplateID,
		})
	}
	logger.WithField("gateway", gateway.Name()).Info("SMS gateway configured")

	ipLimiter := services.NewRateLimitService(services.RateLimitConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
	})
	phoneLimiter := services.NewRateLimitService(services.DefaultOTPRateLimitConfig())

	otpService := services.NewOTPService(database.NewOTPRepository(db), cfg.OTP)
	authService := services.NewAuthService(
		employeeRepo,
		refreshTokenRepo,
		otpService,
		jwtService,
		gateway,
		phoneLimiter,
		cfg.SMS.Mode != "production",
		logger,
	)
	notificationService := services.NewNotificationService(database.NewNotificationRepository(db), logger)
	ledgerService := services.NewLedgerService(database.NewResourceRepository(db), cache, logger)
	eventService := services.NewEventService(
		eventRepo,
		database.NewAssignmentRepository(db),
		database.NewSalesEntryRepository(db),
		database.NewSubtaskRepository(db),
		employeeRepo,
		notificationService,
		cache,
		logger,
	)
	approvalService := services.NewApprovalService(database.NewSalesReportRepository(db), notificationService, logger)
	issueService := services.NewIssueService(database.NewIssueRepository(db), eventRepo, employeeRepo, notificationService, logger)
	hierarchyService := services.NewHierarchyService(employeeRepo, cfg.Hierarchy.MaxDepth, logger)
	salesService := services.NewSalesService(database.NewSalesRepository(db), cache, logger)
	reportService := services.NewReportService(oltRepo, database.NewKamRepository(db), logger)
	importService := services.NewImportService(oltRepo, employeeRepo, logger)
	cronService := services.NewCronService(eventService, refreshTokenRepo, cfg.Cron.EventLifecycleSpec, logger)

	if cfg.Cron.Enabled {
		if err := cronService.Start(); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	go ipLimiter.RunCleanup(bgCtx, time.Minute)
	go phoneLimiter.RunCleanup(bgCtx, time.Minute)

	router := setupRouter(routerDeps{
		cfg:           cfg,
		logger:        logger,
		db:            db,
		sessions:      authService,
		authLimiter:   ipLimiter,
		auth:          handlers.NewAuthHandler(authService, logger),
		resources:     handlers.NewResourceHandler(ledgerService, logger),
		events:        handlers.NewEventHandler(eventService, logger),
		salesReports:  handlers.NewSalesReportHandler(approvalService, logger),
		issues:        handlers.NewIssueHandler(issueService, logger),
		hierarchy:     handlers.NewHierarchyHandler(hierarchyService, logger),
		notifications: handlers.NewNotificationHandler(notificationService, logger),
		sales:         handlers.NewSalesHandler(salesService, logger),
		admin:         handlers.NewAdminHandler(hierarchyService, reportService, importService, salesService, cronService, logger),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	cronService.Stop()
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      c.Request.URL.RawQuery,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}
		if sess, ok := middleware.GetSession(c); ok {
			fields["employee_id"] = sess.EmployeeID
			fields["role"] = sess.Role
		}

		entry := logger.WithFields(fields)
		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		if status >= 500 {
			entry.Error("Request completed with server error")
		} else if status >= 400 {
			entry.Warn("Request completed with client error")
		} else {
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
