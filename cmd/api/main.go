package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "student-lending-core/internal/adapter/http"
	"student-lending-core/internal/adapter/middleware"
	"student-lending-core/internal/adapter/repository/gormstore"
	"student-lending-core/internal/config"
	"student-lending-core/internal/infrastructure/cache"
	"student-lending-core/internal/infrastructure/db"
	"student-lending-core/internal/infrastructure/logging"
	"student-lending-core/internal/usecase/ledger"
	"student-lending-core/internal/usecase/lending"
	"student-lending-core/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	gdb, err := db.OpenGorm(cfg, logger)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	tx := gormstore.NewGormUoW(gdb)
	reads := gormstore.Repos(gdb)
	handlers := httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"db":    sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Users:  httpadp.NewUserHandler(user.NewUsecase(reads.Users, tx, logger)),
		Wallet: httpadp.NewWalletHandler(ledger.NewUsecase(tx, logger)),
		Loans:  httpadp.NewLoanHandler(lending.NewUsecase(tx, reads, logger)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(logger))

	idem := middleware.Idempotency(
		cache.NewIdempotencyStore(rdb, "idemp:lending:"),
		time.Duration(cfg.IdempTTLSecs)*time.Second,
		logger,
	)
	httpadp.Register(e.Group("/api/v1"), handlers, idem)
	e.GET("/health", handlers.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
