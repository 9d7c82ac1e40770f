// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Mongo, Redis, session store) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
The historical split between a 24h-session bootstrap and a session-cookie bootstrap
is collapsed here: SESSION_TTL drives both, with 0 meaning a session-only cookie.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session store backend identifiers accepted in SESSION_STORE.
const (
	SessionStoreMongo = "mongo"
	SessionStoreRedis = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the Camellia storefront.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Document Database (MongoDB)
	MongoURL      string `env:"MONGODB_URL,required"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"camellia"`

	// Key-Value Store (Redis), only required when SESSION_STORE=redis
	RedisURL string `env:"REDIS_URL"`

	// Session handling
	SessionStore  string        `env:"SESSION_STORE"  envDefault:"mongo"`
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"24h"`

	// Image uploads
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./images"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Cross-field validation the struct tags cannot express.
	switch cfg.SessionStore {
	case SessionStoreMongo:
	case SessionStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("config: SESSION_STORE=redis requires REDIS_URL")
		}
	default:
		return nil, fmt.Errorf("config: unknown SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
