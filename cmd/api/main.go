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
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/archive"
	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/service-booking/internal/db"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/infra/lock"
	"github.com/BruksfildServices01/service-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/service-booking/internal/infra/repository"
	"github.com/BruksfildServices01/service-booking/internal/jobs"
	"github.com/BruksfildServices01/service-booking/internal/logging"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/routes"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	loc := timezone.Location(cfg.Timezone)
	clock := timezone.SystemClock(loc)

	// ======================================================
	// STORE
	// ======================================================
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	logger.Info("store ready", zap.String("driver", cfg.StoreDriver))

	// ======================================================
	// INFRA
	// ======================================================
	locker, closeLocker, err := openLocker(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	var sender notify.Sender = notify.NewLogSender(logger)
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}
	mail := notify.NewMailDispatcher(sender, logger, 256)
	defer mail.Close()

	var archiver domain.Archiver = archive.Noop{}
	if cfg.ArchiveBucket != "" {
		client := archive.NewS3Client(cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
		archiver = archive.NewS3Archiver(client, cfg.ArchiveBucket, logger)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(store), logger)
	defer auditDispatcher.Close()

	deps := routes.Deps{
		Config:   cfg,
		Store:    store,
		Locker:   locker,
		Notifier: notify.NewService(store, mail, logger),
		Archiver: archiver,
		Audit:    auditDispatcher,
		Clock:    clock,
		Location: loc,
		Log:      logger,
	}
	uc := routes.BuildUseCases(deps)

	// ======================================================
	// JOBS
	// ======================================================
	scheduler, err := jobs.NewScheduler(cfg.PurgeCron, loc, uc.Sweep, logger)
	if err != nil {
		return err
	}
	scheduler.Start()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps, uc)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	scheduler.Stop(ctx)
	return srv.Shutdown(ctx)
}

func openStore(cfg *config.Config) (domain.Repository, error) {
	if cfg.StoreDriver == config.StoreMemory {
		return memory.NewStore(), nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	return infraRepo.NewGormStore(db), nil
}

// openLocker uses redis when configured so every instance shares the lock.
func openLocker(cfg *config.Config, logger *zap.Logger) (domain.SlotLocker, func(), error) {
	if cfg.RedisAddr == "" {
		return lock.NewLocalLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return lock.NewRedisLocker(client, logger), func() { client.Close() }, nil
}
