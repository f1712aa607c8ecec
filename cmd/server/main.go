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

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/minibank-io/minibank/internal/adapter/http/controller"
	"github.com/minibank-io/minibank/internal/adapter/http/middleware"
	"github.com/minibank-io/minibank/internal/adapter/http/router"
	"github.com/minibank-io/minibank/internal/adapter/rates"
	"github.com/minibank-io/minibank/internal/adapter/repository/postgres"
	"github.com/minibank-io/minibank/internal/config"
	"github.com/minibank-io/minibank/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("set migration dialect: %v", err)
	}
	if err := goose.UpContext(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	rateProvider := rates.NewCachedProvider(
		rates.NewCBRProvider(cfg.RatesURL),
		redisClient,
		cfg.RateCacheTTL,
	)

	accountRepo := postgres.NewAccountRepository(db)
	userRepo := postgres.NewUserRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	uow := postgres.NewUnitOfWork(db)
	clock := services.SystemClock{}

	converterService := services.NewConverterService(rateProvider)
	accountService := services.NewAccountService(accountRepo, userRepo, transferRepo, converterService, uow, clock)
	userService := services.NewUserService(userRepo, accountRepo, uow)
	transferService := services.NewTransferService(transferRepo)

	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)
	mux := router.New(
		controller.NewAccountController(accountService),
		controller.NewUserController(userService),
		controller.NewTransferController(accountService, transferService),
		controller.NewConverterController(converterService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddr)
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("shutdown: %v", err)
		}
	}
}
