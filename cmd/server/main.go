package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/corebank/ledger-service/internal/adapter/http/controller"
	"github.com/corebank/ledger-service/internal/adapter/http/middleware"
	"github.com/corebank/ledger-service/internal/adapter/http/router"
	"github.com/corebank/ledger-service/internal/adapter/repository/memory"
	"github.com/corebank/ledger-service/internal/adapter/repository/postgres"
	"github.com/corebank/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger-service/internal/config"
	"github.com/corebank/ledger-service/internal/events"
	"github.com/corebank/ledger-service/internal/events/kafka"
	"github.com/corebank/ledger-service/internal/seed"
	"github.com/corebank/ledger-service/internal/usecase/services"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		accountRepo  repo_interfaces.AccountRepository
		transferRepo repo_interfaces.TransferRepository
		customerRepo repo_interfaces.CustomerRepository
	)

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := postgres.RunMigrations(setupCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		db, err := postgres.Open(setupCtx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer db.Close()

		accountRepo = postgres.NewAccountRepository(db)
		transferRepo = postgres.NewTransferRepository(db)
		customerRepo = postgres.NewCustomerRepository(db)
	case config.StorageDriverMemory:
		store := memory.NewStore()
		accountRepo = memory.NewAccountRepository(store)
		transferRepo = memory.NewTransferRepository(store)
		customerRepo = memory.NewCustomerRepository(store)
	}

	if err := seed.Customers(ctx, customerRepo); err != nil {
		log.Fatalf("seed customers: %v", err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	accountService := services.NewAccountService(accountRepo, customerRepo)
	transferService := services.NewTransferService(transferRepo, accountRepo, publisher)
	queryService := services.NewQueryService(accountRepo, transferRepo, customerRepo)
	customerService := services.NewCustomerService(customerRepo)

	var authMiddleware func(http.Handler) http.Handler
	if cfg.ChannelID != "" && cfg.ChannelKeyHash != "" {
		authMiddleware = middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKeyHash)
	}

	mux := router.New(
		controller.NewAccountController(accountService, transferService, queryService),
		controller.NewCustomerController(customerService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("ledger service listening on %s (storage: %s)", cfg.HTTPAddr, cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
