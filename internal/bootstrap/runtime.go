// Package bootstrap wires shared runtime dependencies for the binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	Tracing bool
}

// InitRuntime connects to the database and Redis, optionally starts tracing,
// and seeds the development admin when configured. The returned shutdown
// function flushes tracing spans.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, func(context.Context) error, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; callers degrade gracefully.
	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()

	shutdown := func(context.Context) error { return nil }
	if opts.Tracing {
		shutdown, err = observability.InitTracing(observability.TracingConfig{
			ServiceName:    "inkwell-api",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Env,
			Enabled:        cfg.TracingEnabled,
			Exporter:       cfg.TracingExporter,
			OTLPEndpoint:   cfg.OTLPEndpoint,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("tracing init failed: %w", err)
		}
	}

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	return db, rdb, shutdown, nil
}

// ensureDevAdmin creates or promotes the configured admin account. It only
// runs in development with DEV_BOOTSTRAP_ADMIN enabled.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@inkwell.local"
	}
	if cfg.DevAdminPassword == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hash, err := auth.HashPassword(cfg.DevAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Email:        email,
				PasswordHash: &hash,
				Role:         models.RoleAdmin,
				Profile: &models.Profile{
					FirstName: "Admin",
				},
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).
				Where("id = ?", admin.ID).
				Updates(map[string]any{"role": models.RoleAdmin, "password_hash": hash}).Error
		}
	})
}
