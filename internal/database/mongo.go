package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the registry.
const (
	CollectionHospitals       = "hospitals"
	CollectionGovernmentUsers = "government_users"
	CollectionAdminUsers      = "admin_users"
	CollectionPatients        = "patients"
)

// Config represents the configuration for the MongoDB connection
type Config struct {
	URI                    string
	Database               string
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnecting          uint64
	ConnectTimeout         time.Duration
	HeartbeatInterval      time.Duration
	ServerSelectionTimeout time.Duration
	TLSEnabled             bool
	TLSCAFile              string
	TLSCertFile            string
	TLSKeyFile             string
}

// NewMongoClient creates a new MongoDB client with the given configuration
func NewMongoClient(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnecting(cfg.MaxConnecting).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetHeartbeatInterval(cfg.HeartbeatInterval).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	if cfg.TLSEnabled {
		tlsConfig, err := createTLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %v", err)
		}
		clientOptions.SetTLSConfig(tlsConfig)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Verify the connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes the registry relies on. The
// unique index on patients.uhn is the authoritative uniqueness guarantee
// for health numbers: concurrent registrations that race past the
// generator's availability check are resolved here, with exactly one
// insert succeeding.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, name := range []string{CollectionHospitals, CollectionGovernmentUsers, CollectionAdminUsers} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, userIDIndex); err != nil {
			return fmt.Errorf("failed to create userId index on %s: %v", name, err)
		}
	}

	hospitalIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hospitalCode", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "licenseNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := db.Collection(CollectionHospitals).Indexes().CreateMany(ctx, hospitalIndexes); err != nil {
		return fmt.Errorf("failed to create hospital indexes: %v", err)
	}

	patientIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uhn", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "hospitalId", Value: 1}, {Key: "createdAt", Value: 1}},
		},
	}
	if _, err := db.Collection(CollectionPatients).Indexes().CreateMany(ctx, patientIndexes); err != nil {
		return fmt.Errorf("failed to create patient indexes: %v", err)
	}

	return nil
}

// URIFromEnv returns the MongoDB connection string from the environment.
func URIFromEnv() (string, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return "", fmt.Errorf("MONGO_URI is not defined in environment variables")
	}
	return uri, nil
}

// createTLSConfig creates a TLS configuration for the MongoDB connection
func createTLSConfig(cfg *Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if cfg.TLSCAFile != "" {
		caCert, err := os.ReadFile(cfg.TLSCAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %v", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to append CA certificate")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate and key: %v", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}
