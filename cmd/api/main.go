package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"pharmacy-store/internal/auth"
	"pharmacy-store/internal/client"
	"pharmacy-store/internal/config"
	"pharmacy-store/internal/pkg/logging"
	"pharmacy-store/internal/repository"
	"pharmacy-store/internal/server"
	"pharmacy-store/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.MustNewLogger("pharmacy-store", cfg.Environment.Name, cfg.Log.Level)
	defer logger.Sync()

	// The DB handle is opened once here and injected everywhere; it is the
	// only process-wide storage state.
	db := client.InitMysqlClient(cfg.DatabaseURL)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)
	tokenMaker := auth.NewTokenMaker(cfg.JWT.Secret, cfg.JWT.TTL)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	contactRepo := repository.NewContactRepository(db)

	authService := service.NewAuthService(userRepo, tokenMaker)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	orderService := service.NewOrderService(db, orderRepo, productRepo, addressRepo, logger)
	paymentService := service.NewPaymentService(
		razorpayClient,
		orderService,
		orderRepo,
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.Currency,
		logger,
	)
	contactService := service.NewContactService(contactRepo)

	srv := server.NewServer(
		tokenMaker,
		authService,
		catalogService,
		orderService,
		paymentService,
		contactService,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
