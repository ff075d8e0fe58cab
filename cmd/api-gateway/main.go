package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ingenio-api/api/swagger"
	"github.com/noah-isme/ingenio-api/internal/handler"
	"github.com/noah-isme/ingenio-api/internal/middleware"
	"github.com/noah-isme/ingenio-api/internal/repository"
	"github.com/noah-isme/ingenio-api/internal/service"
	"github.com/noah-isme/ingenio-api/pkg/cache"
	"github.com/noah-isme/ingenio-api/pkg/config"
	"github.com/noah-isme/ingenio-api/pkg/database"
	"github.com/noah-isme/ingenio-api/pkg/export"
	"github.com/noah-isme/ingenio-api/pkg/jobs"
	"github.com/noah-isme/ingenio-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ingenio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ingenio-api/pkg/middleware/requestid"
	"github.com/noah-isme/ingenio-api/pkg/response"
)

// @title Ingenio API
// @version 1.0.0
// @description Back office for students, enrollments, monthly fees and payments
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	decimal.MarshalJSONWithoutQuotes = true
	response.ExposeDetail(cfg.Env != config.EnvProduction)
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, overdue job runs without a distributed lock", zap.Error(err))
		redisClient = nil
	}
	locks := repository.NewLockRepository(redisClient, logr)
	defer locks.Close() //nolint:errcheck

	validate := validator.New()
	metrics := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	guardianRepo := repository.NewGuardianRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	userRepo := repository.NewUserRepository(db)

	jobLocation := cfg.OverdueJob.Location()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, enrollmentRepo, guardianRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, enrollmentRepo, validate, logr)
	guardianSvc := service.NewGuardianService(guardianRepo, studentRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, validate, logr)
	billingSvc := service.NewBillingService(feeRepo, paymentRepo, enrollmentRepo, metrics, validate, logr)
	reportSvc := service.NewReportService(reportRepo, &export.CSVExporter{Semicolon: cfg.Export.CSVSemicolon}, export.NewPDFExporter(), jobLocation, logr)
	overdueSvc := service.NewOverdueService(feeRepo, locks, metrics, service.OverdueConfig{
		Location: jobLocation,
		LockTTL:  cfg.OverdueJob.LockTTL,
	}, logr)

	scheduler := jobs.NewScheduler(jobs.SchedulerConfig{
		Location: jobLocation,
		Timeout:  cfg.OverdueJob.Timeout,
		Logger:   logr,
	})
	if cfg.OverdueJob.Enabled {
		if err := scheduler.Register(service.OverdueJobName, cfg.OverdueJob.Schedule, overdueSvc.Task()); err != nil {
			logr.Fatal("failed to register overdue job", zap.Error(err))
		}
		scheduler.Start()
		if next, ok := scheduler.Next(service.OverdueJobName); ok {
			logr.Info("overdue job scheduled", zap.String("schedule", cfg.OverdueJob.Schedule), zap.Time("next_run", next))
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.Register(r, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Students:    handler.NewStudentHandler(studentSvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Guardians:   handler.NewGuardianHandler(guardianSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
		Fees:        handler.NewFeeHandler(billingSvc),
		Payments:    handler.NewPaymentHandler(billingSvc),
		Reports:     handler.NewReportHandler(reportSvc),
		Jobs:        handler.NewJobHandler(overdueSvc),
		Health:      handler.NewHealthHandler(db, metrics.Handler()),
	}, authSvc, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	scheduler.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
