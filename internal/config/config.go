package config

import (
	"path"
	"time"

	"github.com/vintnersrow/storefront/internal/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"

	PlatformBaseURLEnv     = "PLATFORM_BASE_URL"
	PlatformAccessTokenEnv = "PLATFORM_ACCESS_TOKEN"
	PlatformVendorEnv      = "PLATFORM_VENDOR"
	PlatformDelayEnv       = "PLATFORM_REQUEST_DELAY"
)

// PlatformConfiguration carries everything needed to talk to the hosted
// commerce platform. RequestDelay is the fixed pause between API calls -
// the platform enforces a 2 req/s limit per store.
type PlatformConfiguration struct {
	BaseURL      string
	AccessToken  string
	Vendor       string
	RequestDelay time.Duration
}

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	Platform PlatformConfiguration
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.GetIntOrDefault(PortEnv, 8080)
	dbURL := env.MustGetString(DatabaseUrlEnv)

	rootPath := env.MustGetString(RootPathEnv)
	migrationsPath := path.Join(rootPath, "db", "migrations")

	platform := PlatformConfiguration{
		BaseURL:      env.MustGetString(PlatformBaseURLEnv),
		AccessToken:  env.MustGetString(PlatformAccessTokenEnv),
		Vendor:       env.GetStringOrDefault(PlatformVendorEnv, "Vintners Row"),
		RequestDelay: env.GetDurationOrDefault(PlatformDelayEnv, 600*time.Millisecond),
	}

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
		Platform:       platform,
	}, nil
}
