// Package config loads cmd/dispatcher's runtime configuration from the
// environment (optionally seeded by a .env file), grounded on
// CedrosPay-server's godotenv-based config pattern — the only pack repo
// loading configuration this way.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/stellaranchor/action-dispatcher/auth"
)

// Config is cmd/dispatcher's full runtime configuration.
type Config struct {
	ListenAddr      string
	HorizonURL      string
	AnchorDomain    string
	AssetCatalogTTL time.Duration
	JWTIssuer       string
	JWTExpiry       time.Duration
	JWTSecrets      map[auth.Audience]string
}

// Load reads configuration from the process environment. If a .env file
// exists at envFile, its values are loaded first and do not override
// variables already set in the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: failed to load %s: %w", envFile, err)
		}
	}

	assetTTL, err := durationEnv("ASSET_CATALOG_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	jwtExpiry, err := durationEnv("JWT_EXPIRY", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:      stringEnv("LISTEN_ADDR", ":8080"),
		HorizonURL:      stringEnv("HORIZON_URL", "https://horizon-testnet.stellar.org"),
		AnchorDomain:    stringEnv("ANCHOR_DOMAIN", ""),
		AssetCatalogTTL: assetTTL,
		JWTIssuer:       stringEnv("JWT_ISSUER", "dispatcher"),
		JWTExpiry:       jwtExpiry,
		JWTSecrets: map[auth.Audience]string{
			auth.AudienceSEP10:            stringEnv("JWT_SECRET_SEP10", ""),
			auth.AudienceSEP24Interactive: stringEnv("JWT_SECRET_SEP24_INTERACTIVE", ""),
			auth.AudienceSEP24MoreInfo:    stringEnv("JWT_SECRET_SEP24_MORE_INFO", ""),
			auth.AudienceCallback:         stringEnv("JWT_SECRET_CALLBACK", ""),
			auth.AudiencePlatform:         stringEnv("JWT_SECRET_PLATFORM", ""),
			auth.AudienceCustody:          stringEnv("JWT_SECRET_CUSTODY", ""),
		},
	}

	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer number of seconds: %w", key, err)
	}
	return time.Duration(d) * time.Second, nil
}
