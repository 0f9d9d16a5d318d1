// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package config

import (
	"strings"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8094 {
		t.Errorf("default port = %d, want 8094", cfg.Server.Port)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("default bcrypt cost = %d, want 12", cfg.Security.BcryptCost)
	}
	if cfg.Catalog.HomeMovies != 6 || cfg.Catalog.HomeShows != 4 {
		t.Errorf("home limits = %d/%d, want 6/4", cfg.Catalog.HomeMovies, cfg.Catalog.HomeShows)
	}
	if cfg.Catalog.MovieResults != 50 {
		t.Errorf("movie result cap = %d, want 50", cfg.Catalog.MovieResults)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_HOME_MOVIES", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q", cfg.Database.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	if cfg.Catalog.HomeMovies != 12 {
		t.Errorf("home movies = %d", cfg.Catalog.HomeMovies)
	}
}

func TestUnmappedEnvIgnored(t *testing.T) {
	t.Setenv("PATH_LIKE_NOISE", "should-not-appear")

	if _, err := Load(); err != nil {
		t.Fatalf("load failed with unmapped env present: %v", err)
	}
}

func TestCORSOriginsSplit(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("second origin = %q", cfg.Security.CORSOrigins[1])
	}
}

func TestValidateRejectsShortJWTSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "too-short"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("short secret passed validation: %v", err)
	}
}

func TestValidateRejectsBcryptCostOutOfRange(t *testing.T) {
	for _, cost := range []int{4, 20} {
		cfg := defaultConfig()
		cfg.Security.BcryptCost = cost
		if err := cfg.Validate(); err == nil {
			t.Errorf("bcrypt cost %d passed validation", cost)
		}
	}
}

func TestValidateProductionRequirements(t *testing.T) {
	base := func() *Config {
		cfg := defaultConfig()
		cfg.Server.Environment = "production"
		cfg.Database.Password = "s3cret"
		cfg.Security.JWTSecret = strings.Repeat("k", 32)
		cfg.Security.CookieSecure = true
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("complete production config rejected: %v", err)
	}

	cfg := base()
	cfg.Database.Password = ""
	if err := cfg.Validate(); err == nil {
		t.Error("production without db password accepted")
	}

	cfg = base()
	cfg.Security.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("production without jwt secret accepted")
	}

	cfg = base()
	cfg.Security.CookieSecure = false
	if err := cfg.Validate(); err == nil {
		t.Error("production with insecure cookies accepted")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "sidrama",
		Name:    "sidrama",
		SSLMode: "disable",
	}
	dsn := cfg.DSN()
	for _, part := range []string{"host=localhost", "port=5432", "user=sidrama", "dbname=sidrama", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}
}

func TestServerAddr(t *testing.T) {
	cfg := ServerConfig{Host: "0.0.0.0", Port: 8094}
	if got := cfg.Addr(); got != "0.0.0.0:8094" {
		t.Errorf("Addr() = %q", got)
	}
}
