package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-timetable-dss/api/swagger"
	"github.com/noah-isme/sma-timetable-dss/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-timetable-dss/internal/middleware"
	"github.com/noah-isme/sma-timetable-dss/internal/models"
	"github.com/noah-isme/sma-timetable-dss/internal/planner"
	"github.com/noah-isme/sma-timetable-dss/internal/repository"
	"github.com/noah-isme/sma-timetable-dss/internal/service"
	"github.com/noah-isme/sma-timetable-dss/pkg/cache"
	"github.com/noah-isme/sma-timetable-dss/pkg/config"
	"github.com/noah-isme/sma-timetable-dss/pkg/jobs"
	"github.com/noah-isme/sma-timetable-dss/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-timetable-dss/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-timetable-dss/pkg/middleware/requestid"
	"github.com/noah-isme/sma-timetable-dss/pkg/storage"
)

const (
	jobExportCleanup = "export-cleanup"
	jobProposalSweep = "proposal-sweep"
	jobCacheFlush    = "cache-flush"
	shutdownTimeout  = 10 * time.Second
)

// @title SMA Timetable DSS API
// @version 1.0.0
// @description Generates, ranks and exports weekly class timetable options
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	redisClient, err := cache.NewRedis(cfg.Redis)
	switch {
	case errors.Is(err, cache.ErrDisabled):
		logr.Info("redis disabled; option cache off")
	case err != nil:
		logr.Warn("redis unavailable; option cache off", zap.Error(err))
	}
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, "planner", cfg.Planner.CacheTTL, logr, cfg.Planner.CacheEnabled && redisClient != nil)

	catalog := planner.DefaultCatalog().WithOverrides(cfg.Planner.Rooms, cfg.Planner.HeavyKeywords)
	engine := planner.NewEngine(planner.WithCatalog(catalog), planner.WithLogger(logr.Named("planner")))
	plannerSvc := service.NewPlannerService(engine, cacheSvc, metricsSvc, validator.New(), logr, service.PlannerConfig{
		ProposalTTL: cfg.Planner.ProposalTTL,
		CacheTTL:    cfg.Planner.CacheTTL,
		MaxSubjects: cfg.Planner.MaxSubjects,
	})

	fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(plannerSvc, fileStore, signer, metricsSvc, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr, nil, nil)

	maintenance := jobs.NewQueue("maintenance", maintenanceHandler(plannerSvc, exportSvc, cacheSvc), jobs.QueueConfig{
		Workers:    cfg.Exports.CleanupWorkers,
		MaxRetries: cfg.Exports.CleanupRetries,
		Logger:     logr,
	})
	maintenance.Start(ctx)
	defer maintenance.Stop()
	if err := maintenance.Every(cfg.Exports.CleanupInterval, jobExportCleanup); err != nil {
		logr.Warn("export cleanup not scheduled", zap.Error(err))
	}
	if err := maintenance.Every(sweepInterval(cfg.Planner.ProposalTTL), jobProposalSweep); err != nil {
		logr.Warn("proposal sweep not scheduled", zap.Error(err))
	}
	// Entries cached under the stock catalog are unreachable once overrides apply.
	if len(cfg.Planner.Rooms) > 0 || len(cfg.Planner.HeavyKeywords) > 0 {
		if err := maintenance.Enqueue(jobs.Job{Type: jobCacheFlush}); err != nil {
			logr.Warn("option cache flush not queued", zap.Error(err))
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metricsSvc, map[string]handler.ReadinessCheck{
		"redis": redisCheck(redisClient),
	})
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	plannerHandler := handler.NewPlannerHandler(plannerSvc, exportSvc, logr)
	api := r.Group(cfg.APIPrefix)
	api.GET("/planner/defaults", plannerHandler.Defaults)
	api.GET("/planner/status", metricsHandler.Status)
	api.GET("/planner/exports/:token", plannerHandler.Download)

	protected := api.Group("/planner", plannerGuards(cfg.JWT)...)
	protected.POST("/options", plannerHandler.Generate)
	protected.GET("/proposals/:id", plannerHandler.GetProposal)
	protected.GET("/proposals/:id/options/:optionId", plannerHandler.GetOption)
	protected.POST("/proposals/:id/options/:optionId/export", plannerHandler.Export)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.Bool("auth", cfg.JWT.RequireAuth))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// plannerGuards enforces planner roles when auth is required. Otherwise a
// valid token is still decoded so handlers can attribute the request.
func plannerGuards(cfg config.JWTConfig) []gin.HandlerFunc {
	tokens := service.NewTokenService(cfg.Secret, cfg.Issuer)
	if !cfg.RequireAuth {
		return []gin.HandlerFunc{internalmiddleware.OptionalJWT(tokens)}
	}
	return []gin.HandlerFunc{internalmiddleware.JWT(tokens), internalmiddleware.RequireRoles(models.PlannerRoles...)}
}

func maintenanceHandler(proposals *service.PlannerService, exports *service.ExportService, cache *service.CacheService) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		switch job.Type {
		case jobExportCleanup:
			_, err := exports.Cleanup(ctx)
			return err
		case jobProposalSweep:
			proposals.SweepExpired(ctx)
			return nil
		case jobCacheFlush:
			return cache.Invalidate(ctx)
		default:
			return fmt.Errorf("unknown maintenance job %q", job.Type)
		}
	}
}

// sweepInterval runs the proposal sweep a few times per TTL window.
func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Minute {
		return time.Minute
	}
	return interval
}

func redisCheck(client *redis.Client) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		return cache.Ping(ctx, client)
	}
}
