package app

import (
	"context"
	"fmt"

	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/creatorkit/server/internal/domain/creation"
	"github.com/creatorkit/server/internal/domain/entitlement"
	"github.com/creatorkit/server/internal/domain/generation"
	"github.com/creatorkit/server/internal/domain/identity"
	"github.com/creatorkit/server/internal/domain/usage"

	// Inbound adapters
	ginadapter "github.com/creatorkit/server/internal/adapter/inbound/gin"

	// Ports
	"github.com/creatorkit/server/internal/port/inbound"
	"github.com/creatorkit/server/internal/port/outbound"

	// Outbound adapters
	"github.com/creatorkit/server/internal/adapter/outbound/aiprovider"
	"github.com/creatorkit/server/internal/adapter/outbound/mediaprovider"
	"github.com/creatorkit/server/internal/adapter/outbound/pdf"
	"github.com/creatorkit/server/internal/adapter/outbound/postgres"
	redisadapter "github.com/creatorkit/server/internal/adapter/outbound/redis"
	s3adapter "github.com/creatorkit/server/internal/adapter/outbound/s3"
	"github.com/creatorkit/server/internal/adapter/outbound/session"

	// Infrastructure
	"github.com/creatorkit/server/internal/infra/httpclient"
	"github.com/creatorkit/server/internal/shared/cache"
	"github.com/creatorkit/server/internal/shared/config"
	"github.com/creatorkit/server/internal/shared/database"

	// Utils
	"github.com/creatorkit/server/internal/utils/logger"
	"github.com/creatorkit/server/internal/utils/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideZapLogger,
	ProvideDatabase,
	ProvideRedisClient,
	ProvideMetrics,
	ProvideRateLimiter,
	ProvideIdempotencyStore,
)

// ProvideLogger creates the slog logger used by HTTP middleware.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates the zap logger used by domains and adapters.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideDatabase opens postgres and, when enabled, applies pending migrations.
func ProvideDatabase(cfg *config.Config, zapLog *zap.Logger) (*gorm.DB, func(), error) {
	if cfg.Database.AutoMigrate {
		version, err := database.Migrate(cfg.Database.URL())
		if err != nil {
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		zapLog.Info("database schema ready", zap.Uint("version", version))
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			zapLog.Warn("close database failed", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient connects to Redis. Redis is optional: without it rate
// limiting and idempotency are disabled.
func ProvideRedisClient(cfg *config.Config, zapLog *zap.Logger) (*goredis.Client, func()) {
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		zapLog.Warn("Redis connection failed, continuing without rate limiting", zap.Error(err))
		return nil, func() {}
	}
	if client == nil {
		return nil, func() {}
	}
	return client, func() { _ = client.Close() }
}

// ProvideMetrics creates a metrics instance.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New("creatorkit")
}

// ProvideRateLimiter creates a rate limiter, or nil without Redis.
func ProvideRateLimiter(cfg *config.Config, client *goredis.Client) outbound.RateLimiterPort {
	if client == nil || !cfg.RateLimit.Enabled {
		return nil
	}
	return redisadapter.NewRateLimiter(client)
}

// ProvideIdempotencyStore creates the idempotency store, or nil without Redis.
func ProvideIdempotencyStore(client *goredis.Client) outbound.IdempotencyStorePort {
	if client == nil {
		return nil
	}
	return redisadapter.NewIdempotencyStore(client)
}

// ===== Outbound Adapter Providers =====

// AdapterSet provides outbound adapters.
var AdapterSet = wire.NewSet(
	postgres.NewCreationAdapter,
	postgres.NewUsageAdapter,
	postgres.NewTransactor,
	ProvideSessionVerifier,
	ProvideTextProvider,
	ProvideImageProvider,
	ProvideImageStorage,
	ProvideDocumentParser,
)

// ProvideSessionVerifier creates the session token verifier.
func ProvideSessionVerifier(cfg *config.Config) (outbound.SessionVerifierPort, error) {
	return session.NewVerifier(&session.Config{
		Secret:    cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
		PlanClaim: cfg.Auth.PlanClaim,
	})
}

// ProvideTextProvider creates the text generation backend.
func ProvideTextProvider(cfg *config.Config, m *metrics.Metrics) (outbound.TextGenerationPort, func(), error) {
	client := httpclient.WithTimeout(cfg.HTTPClient, cfg.TextProvider.Timeout)
	port, closer, err := aiprovider.New(context.Background(), cfg.TextProvider, client, m)
	if err != nil {
		return nil, nil, fmt.Errorf("init text provider: %w", err)
	}
	return port, func() { _ = closer.Close() }, nil
}

// ProvideImageProvider creates the text-to-image backend. It returns nil when
// no API key is configured, which disables image generation.
func ProvideImageProvider(cfg *config.Config, m *metrics.Metrics, zapLog *zap.Logger) (outbound.ImageGenerationPort, error) {
	if cfg.ImageProvider.APIKey == "" {
		zapLog.Warn("image provider not configured, image generation disabled")
		return nil, nil
	}
	client := httpclient.WithTimeout(cfg.HTTPClient, cfg.ImageProvider.Timeout)
	port, err := mediaprovider.New(cfg.ImageProvider, client, m)
	if err != nil {
		return nil, fmt.Errorf("init image provider: %w", err)
	}
	return port, nil
}

// ProvideImageStorage creates the bucket-backed image store. It returns nil
// when no bucket is configured, which disables every image kind.
func ProvideImageStorage(cfg *config.Config, zapLog *zap.Logger) (outbound.ImageStoragePort, error) {
	if cfg.Storage.Bucket == "" {
		zapLog.Warn("image storage not configured, image kinds disabled")
		return nil, nil
	}
	client, err := s3adapter.NewClient(context.Background(), &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return s3adapter.NewImageStorageAdapter(client, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL, cfg.Storage.KeyPrefix), nil
}

// ProvideDocumentParser creates the PDF text extractor.
func ProvideDocumentParser() outbound.DocumentParserPort {
	return pdf.NewParser(pdf.DefaultMaxPages)
}

// ===== Domain Providers =====

// DomainSet provides domain services.
var DomainSet = wire.NewSet(
	ProvideIdentityDomain,
	ProvideCreationDomain,
	ProvideUsageRecorder,
	ProvideGenerationRegistry,
	ProvideGenerationDomain,
)

// ProvideIdentityDomain creates the identity domain.
func ProvideIdentityDomain(
	cfg *config.Config,
	sessions outbound.SessionVerifierPort,
	usageDB outbound.UsageDatabasePort,
	zapLog *zap.Logger,
) inbound.IdentityDomain {
	return identity.NewIdentityDomain(sessions, usageDB, cfg.Quota.FreeLimit, zapLog)
}

// ProvideCreationDomain creates the creation domain.
func ProvideCreationDomain(creationDB outbound.CreationDatabasePort, zapLog *zap.Logger) *creation.Domain {
	return creation.NewCreationDomain(creationDB, zapLog)
}

// ProvideUsageRecorder creates the usage recorder.
func ProvideUsageRecorder(cfg *config.Config, usageDB outbound.UsageDatabasePort, zapLog *zap.Logger) *usage.Recorder {
	return usage.NewRecorder(usageDB, cfg.Quota.FreeLimit, zapLog)
}

// ProvideGenerationRegistry registers every kind whose backends are
// configured. Image kinds need storage; text-to-image also needs a provider.
func ProvideGenerationRegistry(
	text outbound.TextGenerationPort,
	images outbound.ImageGenerationPort,
	storage outbound.ImageStoragePort,
	parser outbound.DocumentParserPort,
) (*generation.Registry, error) {
	variants := []generation.Variant{
		generation.NewArticleVariant(text),
		generation.NewBlogTitleVariant(text),
		generation.NewResumeReviewVariant(parser, text),
	}
	if storage != nil {
		variants = append(variants,
			generation.NewRemoveBackgroundVariant(storage),
			generation.NewRemoveObjectVariant(storage),
		)
		if images != nil {
			variants = append(variants, generation.NewImageVariant(images, storage))
		}
	}
	return generation.NewRegistry(variants...)
}

// ProvideGenerationDomain creates the generation pipeline.
func ProvideGenerationDomain(
	cfg *config.Config,
	registry *generation.Registry,
	creations *creation.Domain,
	recorder *usage.Recorder,
	tx outbound.TransactorPort,
	zapLog *zap.Logger,
) inbound.GenerationDomain {
	return generation.NewGenerationDomain(
		registry,
		entitlement.NewGate(cfg.Quota.FreeLimit),
		creations,
		recorder,
		tx,
		zapLog,
	)
}

// ===== HTTP Handler Providers =====

// HandlerSet provides HTTP handlers.
var HandlerSet = wire.NewSet(
	ProvideGenerationHandler,
	ProvideCreationHandler,
	ginadapter.NewUsageHandler,
	wire.Struct(new(ginadapter.Handlers), "*"),
)

// ProvideGenerationHandler creates the generation HTTP handler.
func ProvideGenerationHandler(
	cfg *config.Config,
	generationDomain inbound.GenerationDomain,
	m *metrics.Metrics,
	zapLog *zap.Logger,
) inbound.GenerationHttpPort {
	return ginadapter.NewGenerationHandler(generationDomain, m, cfg.Server.MaxUploadBytes, zapLog)
}

// ProvideCreationHandler creates the creation HTTP handler.
func ProvideCreationHandler(creations *creation.Domain, m *metrics.Metrics) inbound.CreationHttpPort {
	return ginadapter.NewCreationHandler(creations, m)
}

// AppSet combines every provider set.
var AppSet = wire.NewSet(
	InfraSet,
	AdapterSet,
	DomainSet,
	HandlerSet,
)
