package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"rentease/internal/caching"
	"rentease/internal/common"
	"rentease/internal/config"
	"rentease/internal/handlers"
	"rentease/internal/jobs"
	"rentease/internal/middleware"
	"rentease/internal/repositories"
	"rentease/internal/services"
	"rentease/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	storageSvc, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(ctx, cfg.LeaseBucket); err != nil {
		log.Fatalf("Failed to prepare lease document bucket: %v", err)
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(pool)
	propertyRepo := repositories.NewPropertyRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)
	leaseRepo := repositories.NewLeaseRepository(pool)
	paymentRepo := repositories.NewRentPaymentRepository(pool)
	maintenanceRepo := repositories.NewMaintenanceRepository(pool)

	// Services
	tokenSvc := services.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	accountSvc := services.NewAccountService(accountRepo, tokenSvc)
	propertySvc := services.NewPropertyService(propertyRepo)
	tenantSvc := services.NewTenantService(tenantRepo, propertyRepo)
	leaseSvc := services.NewLeaseService(leaseRepo, storageSvc, cfg.LeaseBucket)
	paymentSvc := services.NewRentPaymentService(paymentRepo, cacheSvc)
	maintenanceSvc := services.NewMaintenanceService(maintenanceRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(accountSvc)
	propertyHandlers := handlers.NewPropertyHandlers(propertySvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	leaseHandlers := handlers.NewLeaseHandlers(leaseSvc)
	paymentHandlers := handlers.NewRentPaymentHandlers(paymentSvc)
	maintenanceHandlers := handlers.NewMaintenanceHandlers(maintenanceSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storageSvc)

	// Background jobs
	scheduler, err := jobs.NewScheduler(paymentSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = common.HTTPErrorHandler

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.BodyLimit("12M"))

	api := e.Group("/api")

	api.GET("/health", healthHandlers.Health)

	// Public auth endpoints
	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	// Everything below requires a valid access token.
	protected := api.Group("")
	protected.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTAccessSecret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		},
	}))
	protected.Use(middleware.ResolveAccount(accountRepo))

	manage := middleware.RequireRoles("landlord", "admin")

	protected.GET("/auth/me", authHandlers.Me)
	protected.POST("/auth/logout", authHandlers.Logout)

	protected.GET("/properties", propertyHandlers.ListProperties)
	protected.GET("/properties/:id", propertyHandlers.GetProperty)
	protected.POST("/properties", propertyHandlers.CreateProperty, manage)
	protected.PUT("/properties/:id", propertyHandlers.UpdateProperty, manage)
	protected.DELETE("/properties/:id", propertyHandlers.DeleteProperty, manage)

	protected.GET("/tenants", tenantHandlers.ListTenants)
	protected.GET("/tenants/:id", tenantHandlers.GetTenant)
	protected.POST("/tenants", tenantHandlers.CreateTenant, manage)
	protected.PUT("/tenants/:id", tenantHandlers.UpdateTenant, manage)
	protected.DELETE("/tenants/:id", tenantHandlers.DeleteTenant, manage)

	protected.GET("/leases", leaseHandlers.ListLeases)
	protected.GET("/leases/:id", leaseHandlers.GetLease)
	protected.GET("/leases/:id/download", leaseHandlers.DownloadDocument)
	protected.POST("/leases", leaseHandlers.CreateLease, manage)
	protected.PUT("/leases/:id", leaseHandlers.UpdateLease, manage)
	protected.DELETE("/leases/:id", leaseHandlers.DeleteLease, manage)

	protected.GET("/rent-payments", paymentHandlers.ListPayments)
	protected.GET("/rent-payments/stats/summary", paymentHandlers.GetStats)
	protected.GET("/rent-payments/:id", paymentHandlers.GetPayment)
	protected.GET("/rent-payments/:id/receipt", paymentHandlers.DownloadReceipt)
	protected.POST("/rent-payments", paymentHandlers.CreatePayment, manage)
	protected.PUT("/rent-payments/:id", paymentHandlers.UpdatePayment, manage)
	protected.DELETE("/rent-payments/:id", paymentHandlers.DeletePayment, manage)

	protected.GET("/maintenance", maintenanceHandlers.ListRequests)
	protected.GET("/maintenance/:id", maintenanceHandlers.GetRequest)
	protected.POST("/maintenance", maintenanceHandlers.CreateRequest, manage)
	protected.PUT("/maintenance/:id", maintenanceHandlers.UpdateRequest, manage)
	protected.DELETE("/maintenance/:id", maintenanceHandlers.DeleteRequest, manage)

	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server stopped: %v", err)
	}
}
