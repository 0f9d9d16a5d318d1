// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

// Package config loads and validates server configuration.
//
// Configuration is loaded via Koanf v2 with layered sources
// (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the SIDRAMA server.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
// Credentials are supplied externally (environment or secret-mounted file);
// nothing here is hard-coded.
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"ssl_mode"`

	// MaxConns bounds the pgx pool. 0 = pool default (4 * NumCPU).
	MaxConns int32 `koanf:"max_conns"`
	MinConns int32 `koanf:"min_conns"`

	// AcquireTimeout bounds how long a render waits for a pooled connection.
	// A slow database call must not block a render indefinitely.
	AcquireTimeout time.Duration `koanf:"acquire_timeout"`

	// QueryTimeout bounds individual statements and external function calls.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// DSN builds the pgx connection string from the configured parameters.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production". Production tightens
	// validation (secrets required, secure cookies enforced).
	Environment string `koanf:"environment"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs remember-me tokens. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the idle lifetime of a browser session.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// RememberMeTimeout is the lifetime of the remember-me token.
	RememberMeTimeout time.Duration `koanf:"remember_me_timeout"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`

	// LoginAttempts is the per-username failed login budget per LoginWindow.
	LoginAttempts int           `koanf:"login_attempts"`
	LoginWindow   time.Duration `koanf:"login_window"`

	// RateLimitReqs/RateLimitWindow bound per-IP request rates globally.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins  []string `koanf:"cors_origins"`
	CookieSecure bool     `koanf:"cookie_secure"`
}

// CatalogConfig holds presentation limits for catalog pages.
// These mirror the fixed limits of the page layouts.
type CatalogConfig struct {
	// HomeMovies is the number of popular movies shown on Home.
	HomeMovies int `koanf:"home_movies"`

	// HomeShows is the number of top-rated shows shown on Home.
	HomeShows int `koanf:"home_shows"`

	// MovieResults caps the Movies page result list.
	MovieResults int `koanf:"movie_results"`

	// RecentReviews is the number of recent reviews shown per movie.
	RecentReviews int `koanf:"recent_reviews"`

	// RecentEpisodeReviews is the number of recent episode reviews per show.
	RecentEpisodeReviews int `koanf:"recent_episode_reviews"`

	// TopRanked is the length of the platform top lists on Statistics.
	TopRanked int `koanf:"top_ranked"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks the configuration for completeness and safety.
// Development mode is permissive; production requires real secrets.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required (DB_HOST)")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required (DB_USER)")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required (DB_NAME)")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port %d is out of range", c.Database.Port)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	if len(c.Security.JWTSecret) > 0 && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Security.BcryptCost < 10 || c.Security.BcryptCost > 16 {
		return fmt.Errorf("bcrypt cost %d is outside the sane range [10,16]", c.Security.BcryptCost)
	}

	if c.Server.IsProduction() {
		if c.Database.Password == "" {
			return fmt.Errorf("database password is required in production (DB_PASSWORD)")
		}
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if !c.Security.CookieSecure {
			return fmt.Errorf("cookie_secure must be enabled in production")
		}
	}

	return nil
}
