package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/medhubhq/medhub/internal/config"
	"github.com/medhubhq/medhub/internal/database"
)

// Creates the unique indexes the registry depends on: external user IDs
// per role collection, hospital code and license number, and the
// patient health number. The uhn index is what makes concurrent
// registrations safe, so run this before the first server start.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	timeout := flag.Duration("timeout", 30*time.Second, "Index creation timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoURI, err := database.URIFromEnv()
	if err != nil {
		log.Fatalf("MongoDB configuration missing: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := database.NewMongoClient(ctx, &database.Config{
		URI:                    mongoURI,
		Database:               cfg.Mongo.Database,
		MaxPoolSize:            1,
		MaxConnecting:          1,
		ConnectTimeout:         cfg.Mongo.ConnectTimeout,
		HeartbeatInterval:      cfg.Mongo.HeartbeatInterval,
		ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
		TLSEnabled:             cfg.Mongo.TLS.Enabled,
		TLSCAFile:              cfg.Mongo.TLS.CAFile,
		TLSCertFile:            cfg.Mongo.TLS.CertFile,
		TLSKeyFile:             cfg.Mongo.TLS.KeyFile,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	fmt.Println("Successfully ensured all collection indexes")
}
