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

	"github.com/kelashcheehal/rozana-bazar-admin-panel/config"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/api"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/broker"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/cache"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/service"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/storage"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting rozana admin service")

	tp, err := util.InitTracer("rozana-admin", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	queryCache, err := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer queryCache.Close()
	log.Println("Query cache connected")

	uploader, err := storage.NewUploader(storage.Config{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		UseSSL:        cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}
	log.Println("Object storage connected")

	catalogProducer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicCatalog)
	defer catalogProducer.Close()
	orderProducer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
	defer orderProducer.Close()
	log.Println("Kafka producers initialized")

	eventPublisher := broker.NewEventPublisher(catalogProducer, orderProducer)

	productService := service.NewProductService(db, queryCache, uploader, eventPublisher, cfg.Catalog.PageSize)
	orderService := service.NewOrderService(db, queryCache, eventPublisher, cfg.Catalog.PageSize)
	boardService := service.NewBoardService(db, orderService)
	statsService := service.NewStatsService(db, queryCache)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	orderConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders, cfg.Kafka.ConsumerGroup)
	aggregatesWorker := worker.NewAggregatesWorker(orderConsumer, db)
	go func() {
		if err := aggregatesWorker.Start(workerCtx); err != nil {
			log.Printf("Aggregates worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(productService, orderService, boardService, statsService, db, cfg.Catalog.PageSize)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	aggregatesWorker.Stop()

	log.Println("Server exited")
}
