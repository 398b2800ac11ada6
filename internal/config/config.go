package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host    string        `yaml:"host"`
		Port    int           `yaml:"port"`
		Mode    string        `yaml:"mode"`
		Timeout time.Duration `yaml:"timeout"`
		TLS     struct {
			Enabled  bool   `yaml:"enabled"`
			CertFile string `yaml:"cert_file"`
			KeyFile  string `yaml:"key_file"`
		} `yaml:"tls"`
	} `yaml:"server"`

	Mongo struct {
		Database               string        `yaml:"database"`
		MaxPoolSize            uint64        `yaml:"max_pool_size"`
		MinPoolSize            uint64        `yaml:"min_pool_size"`
		MaxConnecting          uint64        `yaml:"max_connecting"`
		ConnectTimeout         time.Duration `yaml:"connect_timeout"`
		HeartbeatInterval      time.Duration `yaml:"heartbeat_interval"`
		ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout"`
		TLS                    struct {
			Enabled  bool   `yaml:"enabled"`
			CAFile   string `yaml:"ca_file"`
			CertFile string `yaml:"cert_file"`
			KeyFile  string `yaml:"key_file"`
		} `yaml:"tls"`
	} `yaml:"mongo"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func Load() (*Config, error) {
	// Look for config in multiple locations
	configPaths := []string{
		"./configs/config.yaml",
		"../configs/config.yaml",
		"/etc/medhub/config.yaml",
	}

	var config Config
	for _, path := range configPaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		configFile, err := os.ReadFile(absPath)
		if err != nil {
			continue
		}

		err = yaml.Unmarshal(configFile, &config)
		if err != nil {
			return nil, err
		}

		config.applyDefaults()
		return &config, nil
	}

	return nil, fmt.Errorf("no configuration file found")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 15 * time.Second
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "medhub"
	}
	if c.Mongo.MaxPoolSize == 0 {
		c.Mongo.MaxPoolSize = 20
	}
	if c.Mongo.MaxConnecting == 0 {
		c.Mongo.MaxConnecting = 2
	}
	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = 10 * time.Second
	}
	if c.Mongo.HeartbeatInterval == 0 {
		c.Mongo.HeartbeatInterval = 10 * time.Second
	}
	if c.Mongo.ServerSelectionTimeout == 0 {
		c.Mongo.ServerSelectionTimeout = 30 * time.Second
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 30
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 30
	}
}
