package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/contacts-api/config"
	"github.com/target/contacts-api/internal/adapters/media"
	"github.com/target/contacts-api/internal/adapters/notify"
	redisadapter "github.com/target/contacts-api/internal/adapters/redis"
	"github.com/target/contacts-api/internal/auth"
	"github.com/target/contacts-api/internal/data"
	"github.com/target/contacts-api/internal/service"
)

// ServiceContainer holds the application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Contacts *service.ContactService
}

// ServicesConfig contains dependencies for service construction.
type ServicesConfig struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// NewServices wires repositories, adapters, and services together.
func NewServices(ctx context.Context, cfg ServicesConfig) (ServiceContainer, error) {
	if cfg.Config == nil {
		return ServiceContainer{}, fmt.Errorf("app config is required")
	}

	mediaStore, err := media.NewS3Store(ctx, cfg.Config.Storage)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("init media store: %w", err)
	}

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Deps: service.AuthServiceDeps{
			Users:    data.NewUserRepo(cfg.DB),
			Cache:    redisadapter.NewProfileCache(cfg.Redis),
			Hasher:   auth.NewPasswordHasher(cfg.Config.Auth.BcryptCost),
			Tokens:   auth.NewTokenManager(cfg.Config.Auth),
			Media:    mediaStore,
			Notifier: notify.NewLogNotifier(cfg.Logger, cfg.Config.HTTP.BaseURL),
		},
		Config: service.AuthServiceConfig{
			ProfileCacheTTL:  cfg.Config.Cache.ProfileTTL,
			ResetTokenMaxAge: cfg.Config.Auth.ResetTokenMaxAge,
		},
		Logger: cfg.Logger,
	})

	contactSvc := service.NewContactService(service.ContactServiceOptions{
		Repo:   data.NewContactRepo(cfg.DB),
		Logger: cfg.Logger,
	})

	return ServiceContainer{
		Auth:     authSvc,
		Contacts: contactSvc,
	}, nil
}
