// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. Outside production a
local '.env' file is preloaded with 'joho/godotenv' when present.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, TokenService) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

// # Fallback Secrets

// These values exist only so that a developer can boot the server without
// setting up secrets. [Load] refuses them in any environment other than
// development and test.
const (
	FallbackAccessSecret  = "churchwallet-dev-access-secret-change-me"
	FallbackRefreshSecret = "churchwallet-dev-refresh-secret-change-me"
)

// ErrFallbackSecrets is returned by [Load] when a deployed environment runs
// with the development JWT secrets.
var ErrFallbackSecrets = errors.New("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set outside development")

// localEnvironments may run with the fallback secrets.
var localEnvironments = []string{"development", "test"}

// # Configuration Schema

// Config holds all runtime configuration for the Church Wallet API server.
type Config struct {

	// Server settings
	ServerPort  string     `env:"SERVER_PORT" envDefault:"8080"`
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    slog.Level `env:"LOG_LEVEL"   envDefault:"info"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Key-Value Store (Redis): revocation list and distributed locks
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing
	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET"  envDefault:"churchwallet-dev-access-secret-change-me"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET" envDefault:"churchwallet-dev-refresh-secret-change-me"`
	JWTAccessTTL     time.Duration `env:"JWT_ACCESS_TTL"     envDefault:"15m"`
	JWTRefreshTTL    time.Duration `env:"JWT_REFRESH_TTL"    envDefault:"168h"`
	JWTIssuer        string        `env:"JWT_ISSUER"         envDefault:"churchwallet"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Reverse proxies (IPs or CIDRs) whose forwarding headers are believed
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	trustedPrefixes []netip.Prefix

	// Monthly dues processor
	DuesSchedule  string `env:"DUES_SCHEDULE"   envDefault:"5 0 * * *"`
	DuesEnabled   bool   `env:"DUES_ENABLED"    envDefault:"true"`
	DuesGraceDays int    `env:"DUES_GRACE_DAYS" envDefault:"10"`

	// Resolved identity cache. Zero disables it.
	IdentityCacheTTL time.Duration `env:"IDENTITY_CACHE_TTL" envDefault:"1m"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A '.env' file in the working directory is merged in first unless
// ENVIRONMENT is already "production". Variables present in the process
// environment always win over the file.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "production" {
		_ = godotenv.Load(".env")
	}
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(options env.Options) (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)

	prefixes, err := parsePrefixes(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	cfg.trustedPrefixes = prefixes

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.UsingFallbackSecrets() && !slices.Contains(localEnvironments, c.Environment) {
		return fmt.Errorf("%w (ENVIRONMENT=%q)", ErrFallbackSecrets, c.Environment)
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.DuesGraceDays < 0 || c.DuesGraceDays > 27 {
		return fmt.Errorf("config: DUES_GRACE_DAYS must be between 0 and 27, got %d", c.DuesGraceDays)
	}
	if c.IdentityCacheTTL < 0 {
		return fmt.Errorf("config: IDENTITY_CACHE_TTL must not be negative, got %s", c.IdentityCacheTTL)
	}
	return nil
}

// normalizeOrigins trims entries and drops empty ones and trailing slashes.
func normalizeOrigins(origins []string) []string {
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	return cleaned
}

// parsePrefixes accepts CIDRs and bare addresses, the latter as single-host prefixes.
func parsePrefixes(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("config: TRUSTED_PROXIES entry %q is not an IP or CIDR", entry)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return prefixes, nil
}

// # Derived Settings

// TrustedProxyPrefixes returns the parsed TRUSTED_PROXIES.
func (c *Config) TrustedProxyPrefixes() []netip.Prefix {
	return c.trustedPrefixes
}

// UsingFallbackSecrets reports whether either JWT secret is a development default.
func (c *Config) UsingFallbackSecrets() bool {
	return c.JWTAccessSecret == FallbackAccessSecret || c.JWTRefreshSecret == FallbackRefreshSecret
}

// TokenConfig returns the immutable token settings for [sec.NewTokenService].
func (c *Config) TokenConfig() sec.TokenConfig {
	return sec.TokenConfig{
		AccessSecret:  []byte(c.JWTAccessSecret),
		RefreshSecret: []byte(c.JWTRefreshSecret),
		AccessTTL:     c.JWTAccessTTL,
		RefreshTTL:    c.JWTRefreshTTL,
		Issuer:        c.JWTIssuer,
	}
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Origins returns the configured CORS origins.
func (c *Config) Origins() []string {
	return c.AllowedOrigins
}
