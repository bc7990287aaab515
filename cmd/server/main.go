package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/cache"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/config"
	cronrunner "github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/cron"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/db"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/handler"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/logger"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/middleware"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/notify"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
	gormrepository "github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository/gorm"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"

	_ "github.com/Alvaro-gonzalez05/ControlDeMovimientos/docs"
)

func main() {
	cfgPath := os.Getenv("RULO_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("RULO_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
	}

	store := gormrepository.New(dbConn.Gorm)
	store.QueryTimeout = cfg.DB.QueryTimeout

	summaryCache, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Warn("cache disabled", zap.Error(err))
	}
	if rs, ok := summaryCache.(*cache.RedisStore); ok {
		defer rs.Close()
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Warn("unknown app timezone, using UTC", zap.String("timezone", cfg.App.Timezone), zap.Error(err))
		loc = time.UTC
	}

	movements := &service.MovementService{
		Repo:       store,
		Cache:      summaryCache,
		Notifier:   newNotifier(cfg.Notify, logger, store),
		Logger:     logger,
		SummaryTTL: cfg.Cache.SummaryTTL,
		Location:   loc,
	}
	simulations := &service.SimulationService{Logger: logger, MaxCycles: cfg.Simulation.MaxCycles}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(cfg.Server.CORSOrigins))
	engine.Use(middleware.AccessLog(logger))
	engine.Use(middleware.RequireBearer(cfg.Auth.Token))
	engine.Use(middleware.WriteAudit(logger))

	healthHandler := &handler.HealthHandler{DB: dbConn}
	healthHandler.Register(engine)
	docsHandler := &handler.DocsHandler{Title: cfg.App.Name}
	docsHandler.Register(engine)
	movementHandler := &handler.MovementHandler{Service: movements}
	movementHandler.Register(engine)
	calculatorHandler := &handler.CalculatorHandler{Movements: movements, Simulations: simulations}
	calculatorHandler.Register(engine)
	eventHandler := &handler.EventHandler{Repo: store}
	eventHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled && strings.TrimSpace(cfg.Cron.SummarySnapshot) != "" {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cronrunner.SummarySnapshotJob, cfg.Cron.SummarySnapshot, cronrunner.SummarySnapshot(movements, logger))
		if err != nil {
			logger.Warn("cron register summary snapshot failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newNotifier(cfg config.NotifyConfig, logger *zap.Logger, events repository.EventRepository) notify.Notifier {
	n := notify.Multi{
		&notify.LogNotifier{Logger: logger},
		&notify.StoreNotifier{Repo: events},
	}
	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return n
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return append(n, &notify.WebhookNotifier{
		URL:     cfg.WebhookURL,
		Project: cfg.Project,
		HTTP:    &http.Client{Timeout: timeout},
	})
}
