package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/api"
	"github.com/medhubhq/medhub/internal/audit"
	"github.com/medhubhq/medhub/internal/auth"
	"github.com/medhubhq/medhub/internal/config"
	"github.com/medhubhq/medhub/internal/database"
	"github.com/medhubhq/medhub/internal/encryption"
	"github.com/medhubhq/medhub/internal/hospital"
	"github.com/medhubhq/medhub/internal/patient"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Security settings (key rotation period etc.) read through viper
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	_ = viper.ReadInConfig()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize MongoDB connection: one client for the process, shared
	// by every repository.
	mongoURI, err := database.URIFromEnv()
	if err != nil {
		logger.Fatal("MongoDB configuration missing", zap.Error(err))
	}

	mongoConfig := &database.Config{
		URI:                    mongoURI,
		Database:               cfg.Mongo.Database,
		MaxPoolSize:            cfg.Mongo.MaxPoolSize,
		MinPoolSize:            cfg.Mongo.MinPoolSize,
		MaxConnecting:          cfg.Mongo.MaxConnecting,
		ConnectTimeout:         cfg.Mongo.ConnectTimeout,
		HeartbeatInterval:      cfg.Mongo.HeartbeatInterval,
		ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
		TLSEnabled:             cfg.Mongo.TLS.Enabled,
		TLSCAFile:              cfg.Mongo.TLS.CAFile,
		TLSCertFile:            cfg.Mongo.TLS.CertFile,
		TLSKeyFile:             cfg.Mongo.TLS.KeyFile,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	client, err := database.NewMongoClient(ctx, mongoConfig)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.Mongo.Database)

	// Initialize encryption service
	encryptService, err := encryption.NewService(os.Getenv("ENCRYPTION_KEY"))
	if err != nil {
		logger.Fatal("Failed to initialize encryption service", zap.Error(err))
	}
	encryption.StartKeyRotation(encryptService)

	// Initialize Elasticsearch client for the audit trail
	cfgElastic := elasticsearch.Config{
		Addresses: []string{os.Getenv("ELASTICSEARCH_URL")},
		Username:  os.Getenv("ELASTICSEARCH_USERNAME"),
		Password:  os.Getenv("ELASTICSEARCH_PASSWORD"),
	}
	esClient, err := elasticsearch.NewClient(cfgElastic)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", zap.Error(err))
	}

	// Initialize audit service
	auditService := audit.NewService(esClient)

	// Identity provider token verification
	jwtSecret := os.Getenv("IDENTITY_JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("IDENTITY_JWT_SECRET environment variable is required")
	}
	verifier := auth.NewVerifier(jwtSecret)

	// Initialize repositories and services
	hospitalRepo := account.NewHospitalRepository(db)
	governmentRepo := account.NewGovernmentRepository(db)
	adminRepo := account.NewAdminRepository(db)
	patientRepo := patient.NewRepository(db)

	accountService := account.NewService(hospitalRepo, governmentRepo, adminRepo, auditService)
	patientService := patient.NewService(patientRepo, hospitalRepo, encryptService, auditService)
	hospitalService := hospital.NewService(hospitalRepo, auditService)

	// Initialize handler and router
	handler := api.NewHandler(accountService, patientService, hospitalService, auditService, logger)
	router := api.NewRouter(handler, verifier)
	engine := router.SetupRouter(logger, api.RouterConfig{
		RequestTimeout:    cfg.Server.Timeout,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if cfg.Server.TLS.Enabled {
			if err := srv.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		} else {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
