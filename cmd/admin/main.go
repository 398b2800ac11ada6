package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/joho/godotenv"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/audit"
	"github.com/medhubhq/medhub/internal/config"
	"github.com/medhubhq/medhub/internal/database"
)

// Bootstraps an administrator account for an identity the external
// provider has already issued. Safe to re-run: account creation is
// idempotent per user ID.
func main() {
	userID := flag.String("user-id", "", "External identity user ID")
	email := flag.String("email", "", "Admin email")
	department := flag.String("department", "", "Admin department")
	flag.Parse()

	if *userID == "" || *email == "" {
		log.Fatal("User ID and email are required. Use -user-id and -email flags")
	}

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Elasticsearch client for audit logging
	esCfg := elasticsearch.Config{
		Addresses: []string{os.Getenv("ELASTICSEARCH_URL")},
		Username:  os.Getenv("ELASTICSEARCH_USERNAME"),
		Password:  os.Getenv("ELASTICSEARCH_PASSWORD"),
	}
	esClient, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		log.Fatalf("Failed to connect to Elasticsearch: %v", err)
	}
	auditService := audit.NewService(esClient)

	mongoURI, err := database.URIFromEnv()
	if err != nil {
		log.Fatalf("MongoDB configuration missing: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.NewMongoClient(ctx, &database.Config{
		URI:                    mongoURI,
		Database:               cfg.Mongo.Database,
		MaxPoolSize:            1,
		MaxConnecting:          1,
		ConnectTimeout:         cfg.Mongo.ConnectTimeout,
		HeartbeatInterval:      cfg.Mongo.HeartbeatInterval,
		ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.Mongo.Database)
	accountService := account.NewService(
		account.NewHospitalRepository(db),
		account.NewGovernmentRepository(db),
		account.NewAdminRepository(db),
		auditService,
	)

	input := account.CreateInput{
		UserID: *userID,
		Email:  *email,
		Role:   account.RoleAdmin,
		Admin:  &account.AdminData{Department: *department},
	}
	if err := accountService.Create(ctx, input); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	acct, err := accountService.Get(ctx, *userID, account.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to read back admin account: %v", err)
	}

	fmt.Printf("Admin account ready:\n")
	fmt.Printf("ID: %s\n", acct.ID)
	fmt.Printf("User ID: %s\n", acct.UserID)
	fmt.Printf("Email: %s\n", acct.Email)
}
