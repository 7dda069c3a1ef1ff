package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/creatorkit/server/cmd/server/docs" // swagger docs
	ginadapter "github.com/creatorkit/server/internal/adapter/inbound/gin"
	"github.com/creatorkit/server/internal/adapter/outbound/postgres"
	"github.com/creatorkit/server/internal/port/inbound"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/creatorkit/server/internal/shared/config"
	"github.com/creatorkit/server/internal/shared/database"
	"github.com/creatorkit/server/internal/utils/logger"
	"github.com/creatorkit/server/internal/utils/metrics"
	"github.com/creatorkit/server/internal/utils/middleware"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *goredis.Client
	Logger      *logger.Logger
	ZapLogger   *zap.Logger
	Metrics     *metrics.Metrics
	RateLimiter outbound.RateLimiterPort
	Idempotency outbound.IdempotencyStorePort

	// Domains
	IdentityDomain inbound.IdentityDomain

	// HTTP Handlers
	Handlers ginadapter.Handlers
}

// App represents the application.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config) (*App, error) {
	deps, cleanup, err := newDependencies(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		deps:    deps,
		cleanup: cleanup,
	}
	app.router = app.setupRouter()
	app.registerRoutes()

	return app, nil
}

// newDependencies builds the graph declared by AppSet in dependency order.
// Cleanups run in reverse order of construction.
func newDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(stage string, err error) (*Dependencies, func(), error) {
		cleanup()
		return nil, nil, fmt.Errorf("init %s: %w", stage, err)
	}

	log := ProvideLogger(cfg)
	zapLog, err := ProvideZapLogger(cfg)
	if err != nil {
		return fail("zap logger", err)
	}
	cleanups = append(cleanups, func() { _ = zapLog.Sync() })

	// Infrastructure
	db, dbCleanup, err := ProvideDatabase(cfg, zapLog)
	if err != nil {
		return fail("database", err)
	}
	cleanups = append(cleanups, dbCleanup)

	redisClient, redisCleanup := ProvideRedisClient(cfg, zapLog)
	cleanups = append(cleanups, redisCleanup)

	m := ProvideMetrics()

	// Outbound adapters
	sessions, err := ProvideSessionVerifier(cfg)
	if err != nil {
		return fail("session verifier", err)
	}
	text, textCleanup, err := ProvideTextProvider(cfg, m)
	if err != nil {
		return fail("text provider", err)
	}
	cleanups = append(cleanups, textCleanup)

	images, err := ProvideImageProvider(cfg, m, zapLog)
	if err != nil {
		return fail("image provider", err)
	}
	storage, err := ProvideImageStorage(cfg, zapLog)
	if err != nil {
		return fail("image storage", err)
	}
	creationDB := postgres.NewCreationAdapter(db)
	usageDB := postgres.NewUsageAdapter(db)

	// Domains
	identityDomain := ProvideIdentityDomain(cfg, sessions, usageDB, zapLog)
	creationDomain := ProvideCreationDomain(creationDB, zapLog)
	registry, err := ProvideGenerationRegistry(text, images, storage, ProvideDocumentParser())
	if err != nil {
		return fail("generation registry", err)
	}
	generationDomain := ProvideGenerationDomain(
		cfg,
		registry,
		creationDomain,
		ProvideUsageRecorder(cfg, usageDB, zapLog),
		postgres.NewTransactor(db),
		zapLog,
	)
	zapLog.Info("generation kinds registered", zap.Stringers("kinds", registry.Kinds()))

	return &Dependencies{
		Config:         cfg,
		DB:             db,
		Redis:          redisClient,
		Logger:         log,
		ZapLogger:      zapLog,
		Metrics:        m,
		RateLimiter:    ProvideRateLimiter(cfg, redisClient),
		Idempotency:    ProvideIdempotencyStore(redisClient),
		IdentityDomain: identityDomain,
		Handlers: ginadapter.Handlers{
			Generation: ProvideGenerationHandler(cfg, generationDomain, m, zapLog),
			Creation:   ProvideCreationHandler(creationDomain, m),
			Usage:      ginadapter.NewUsageHandler(identityDomain),
		},
	}, cleanup, nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	cfg := a.deps.Config

	// Set Gin mode based on environment
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	// Apply global middleware
	r.Use(middleware.Recovery(a.deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.deps.Logger))
	r.Use(middleware.Metrics(a.deps.Metrics))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoint
	r.GET("/health", a.health)

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// registerRoutes registers every API route.
func (a *App) registerRoutes() {
	cfg := a.deps.Config

	var generationMiddleware []gin.HandlerFunc
	if a.deps.RateLimiter != nil {
		m := a.deps.Metrics
		generationMiddleware = append(generationMiddleware, middleware.RateLimit(a.deps.RateLimiter, middleware.RateLimitConfig{
			Limit:     cfg.RateLimit.Limit,
			Window:    cfg.RateLimit.Window,
			OnLimited: m.RecordRateLimited,
			Logger:    a.deps.Logger,
		}))
	}
	if a.deps.Idempotency != nil {
		generationMiddleware = append(generationMiddleware, middleware.Idempotency(a.deps.Idempotency, middleware.IdempotencyConfig{
			TTL:    cfg.Server.IdempotencyTTL,
			Logger: a.deps.Logger,
		}))
	}

	ginadapter.RegisterRoutes(a.router.Group("/api"), a.deps.Handlers, ginadapter.RouteOptions{
		Auth:       ginadapter.RequireCaller(a.deps.IdentityDomain, a.deps.ZapLogger),
		Generation: generationMiddleware,
	})
}

// health reports whether postgres, and Redis when configured, answer.
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok"}
	code := http.StatusOK

	if err := database.Ping(ctx, a.deps.DB); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if a.deps.Redis != nil {
		if err := a.deps.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
		} else {
			status["redis"] = "ok"
		}
	}

	c.JSON(code, status)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the zap logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.ZapLogger
}

// Stop releases every resource acquired by NewApp.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
