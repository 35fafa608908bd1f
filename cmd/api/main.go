package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiDecoratives/templehub-catalog/internal/config"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/events"
	httpDelivery "github.com/SaiDecoratives/templehub-catalog/internal/delivery/http"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/handler"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/cache"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/database"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
	cacheRepo "github.com/SaiDecoratives/templehub-catalog/internal/repository/cache"
	"github.com/SaiDecoratives/templehub-catalog/internal/repository/fsstore"
	"github.com/SaiDecoratives/templehub-catalog/internal/repository/postgres"
	"github.com/SaiDecoratives/templehub-catalog/internal/usecase/catalog"
	"github.com/SaiDecoratives/templehub-catalog/internal/usecase/review"

	_ "github.com/SaiDecoratives/templehub-catalog/docs"
)

// @title TempleHub Catalog API
// @version 1.0
// @description Product catalog service: product CRUD, image uploads, delivery-gated reviews, storewide sales and catalog search.

// @contact.name API Support
// @contact.url https://github.com/SaiDecoratives/templehub-catalog

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name Products
// @tag.description Product lifecycle and catalog queries

// @tag.name Images
// @tag.description Product image uploads and removal

// @tag.name Reviews
// @tag.description Delivery-gated customer reviews

// @tag.name Sale
// @tag.description Storewide sale management

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting TempleHub Catalog API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}
	appLogger.Info("Connected to PostgreSQL successfully")

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	imageStore, err := fsstore.NewImageStore(cfg.Images.Dir)
	if err != nil {
		appLogger.Fatal("Failed to prepare image store", err)
	}

	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	userRepo := postgres.NewUserRepository(db)
	saleCache := cacheRepo.NewSaleCache(redisClient, cfg.Cache.SaleTTL)

	catalogService := catalog.NewService(productRepo, orderRepo, imageStore, saleCache, publisher, appLogger)
	reviewService := review.NewService(productRepo, userRepo, publisher, appLogger)

	productHandler := handler.NewProductHandler(catalogService, appLogger)
	imageHandler := handler.NewImageHandler(catalogService, cfg.Images.MaxUploadSize, appLogger)
	reviewHandler := handler.NewReviewHandler(reviewService, appLogger)

	router := httpDelivery.NewRouter(productHandler, imageHandler, reviewHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
