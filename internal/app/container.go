package app

import (
	"context"
	"errors"
	"time"

	"jobswipe/internal/config"
	dbpostgres "jobswipe/internal/database/postgres"
	"jobswipe/internal/infrastructure/cache"
	"jobswipe/internal/maintenance"
	"jobswipe/internal/pkg/jwt"
	"jobswipe/internal/pkg/retry"
	"jobswipe/internal/repository"
	"jobswipe/internal/repository/rowcodec"
	ucauth "jobswipe/internal/usecase/auth"
	ucmatch "jobswipe/internal/usecase/match"
	"jobswipe/internal/usecase/profile"
	ucreference "jobswipe/internal/usecase/reference"
	ucswipe "jobswipe/internal/usecase/swipe"
	uctarget "jobswipe/internal/usecase/target"
	ucvacancy "jobswipe/internal/usecase/vacancy"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     *dbpostgres.Pool
	Cache  *cache.Redis
	JWT    *jwt.HMACService

	Matches *repository.PostgresMatchRepository

	Auth      *ucauth.Service
	Profile   *profile.Service
	Vacancies *ucvacancy.Service
	Targets   *uctarget.Service
	Swipes    *ucswipe.Service
	Match     *ucmatch.Service
	Reference *ucreference.Service

	Cleaner *maintenance.Cleaner
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return NewContainerWith(cfg, logger, db, cache.NewRedis(cfg.Redis, logger)), nil
}

// NewContainerWith wires repositories and usecases over already opened
// stores. rc may be a cache that bypasses every call.
func NewContainerWith(cfg config.Config, logger *zap.Logger, db *dbpostgres.Pool, rc *cache.Redis) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  rc,
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}
	c.wire()
	return c
}

// NewStoreContainer connects only to Postgres; the CLI uses it for
// migrations, seeding and cleanup.
func NewStoreContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.Matches = repository.NewPostgresMatchRepository(db)
	c.Cleaner = maintenance.NewCleaner(c.Matches, logger)
	return c, nil
}

func (c *Container) wire() {
	ttl := c.Config.Redis.CacheTTL

	users := repository.NewPostgresUserRepository(c.DB)
	vacancies := repository.NewPostgresVacancyRepository(c.DB)
	swipes := repository.NewPostgresSwipeRepository(c.DB)
	targets := repository.NewPostgresTargetRepository(c.DB)
	refs := repository.NewPostgresReferenceRepository(c.DB)
	c.Matches = repository.NewPostgresMatchRepository(c.DB)

	verifier := ucauth.NewInitDataVerifier(c.Config.Telegram.BotToken, c.Config.Telegram.InitDataMaxAge)
	c.Auth = ucauth.NewService(users, c.JWT, verifier, c.Config.Telegram.DevIdentity, c.Logger)
	c.Profile = profile.NewService(users, c.Cache, c.Logger)
	c.Vacancies = ucvacancy.NewService(vacancies, users, c.Cache, ttl, c.Logger)
	c.Targets = uctarget.NewService(targets, users, swipes, vacancies, c.Cache, uctarget.Options{
		CacheTTL:  ttl,
		Retry:     retry.Default,
		Retryable: retryableStoreError,
	}, c.Logger)
	c.Swipes = ucswipe.NewService(swipes, users, vacancies, c.Targets, c.Cache, c.Logger)
	c.Match = ucmatch.NewService(c.Matches, c.Cache, ttl, c.Logger)
	c.Reference = ucreference.NewService(refs, c.Cache, ttl, c.Logger)

	c.Cleaner = maintenance.NewCleaner(c.Matches, c.Logger)
}

// retryableStoreError skips rows that failed schema checks; a retry would
// read the same rows.
func retryableStoreError(err error) bool {
	var de *rowcodec.DecodeError
	if errors.As(err, &de) {
		return false
	}
	return dbpostgres.IsTransient(err)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
