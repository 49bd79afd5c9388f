package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"student-lending-core/internal/adapter/repository/gormstore"
	"student-lending-core/internal/config"
	"student-lending-core/internal/infrastructure/db"
	"student-lending-core/internal/infrastructure/logging"
	"student-lending-core/internal/usecase/lending"
)

// The scheduler reports overdue loans on OVERDUE_SWEEP_SPEC. It never changes
// a loan's status.
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

	gdb, err := db.OpenGorm(cfg, logger)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	uc := lending.NewUsecase(gormstore.NewGormUoW(gdb), gormstore.Repos(gdb), logger)
	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		loans, err := uc.ListOverdue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("overdue sweep failed", zap.Error(err))
			return
		}
		logger.Info("overdue sweep", zap.Int("overdue", len(loans)))
	}

	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(cfg.OverdueSweepSpec, sweep); err != nil {
		logger.Fatal("schedule overdue sweep", zap.String("spec", cfg.OverdueSweepSpec), zap.Error(err))
	}
	c.Start()
	logger.Info("scheduler started", zap.String("spec", cfg.OverdueSweepSpec))
	sweep()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}
