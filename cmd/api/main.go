package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaign-console/internal/audit"
	"campaign-console/internal/auth"
	"campaign-console/internal/batchcalls"
	"campaign-console/internal/config"
	"campaign-console/internal/console"
	"campaign-console/internal/directory"
	"campaign-console/internal/payments"
	"campaign-console/pkg/logger"
	"campaign-console/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	auditSvc := audit.NewService(audit.NewRedisRepo(rdb))

	dialer := batchcalls.NewClient(cfg.Dialer)
	consoleHandlers := console.Handlers{Dialer: dialer, Audit: auditSvc}

	// The relay stays mounted without a Stripe key; calls then fail with a
	// configuration error instead of the process refusing to start.
	var dispatcher *payments.Dispatcher
	if cfg.Stripe.SecretKey != "" {
		provider, err := payments.NewStripeProvider(cfg.Stripe.SecretKey)
		if err != nil {
			log.Error("stripe init failed", "err", err)
			os.Exit(1)
		}
		lookup := directory.NewService(directory.NewPostgresRepo(db))
		dispatcher = payments.NewDispatcher(provider, lookup)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set; tool relay unconfigured")
	}
	relay := payments.RelayHandler{
		Dispatcher: dispatcher,
		Audit:      auditSvc,
		Limiter:    payments.NewToolLimiter(rdb),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, cfg, authManager, consoleHandlers, relay)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
