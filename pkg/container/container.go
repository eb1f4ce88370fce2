package container

import (
	"context"
	"fmt"

	"soundreel-backend/internal/config"
	"soundreel-backend/internal/domains/account"
	accounthandler "soundreel-backend/internal/domains/account/handler"
	accountrepo "soundreel-backend/internal/domains/account/repository"
	accountservice "soundreel-backend/internal/domains/account/service"
	applicationhandler "soundreel-backend/internal/domains/application/handler"
	applicationrepo "soundreel-backend/internal/domains/application/repository"
	applicationservice "soundreel-backend/internal/domains/application/service"
	contenthandler "soundreel-backend/internal/domains/content/handler"
	contentrepo "soundreel-backend/internal/domains/content/repository"
	contentservice "soundreel-backend/internal/domains/content/service"
	engagementhandler "soundreel-backend/internal/domains/engagement/handler"
	engagementrepo "soundreel-backend/internal/domains/engagement/repository"
	engagementservice "soundreel-backend/internal/domains/engagement/service"
	rediscache "soundreel-backend/internal/infrastructure/cache"
	"soundreel-backend/internal/infrastructure/database"
	"soundreel-backend/internal/infrastructure/email"
	"soundreel-backend/internal/infrastructure/identity"
	"soundreel-backend/internal/infrastructure/storage"
	"soundreel-backend/pkg/logger"
)

// Container wires every dependency once at startup. Construction order runs
// infrastructure first, then repositories, services, handlers; any failure
// aborts the boot.
type Container struct {
	Config *config.Config

	DB       *database.PostgresDB
	Cache    *rediscache.RedisCache
	Gateway  storage.MediaGateway
	Verifier identity.Verifier
	Notifier email.Notifier

	// AccountService doubles as the middleware's AccountResolver.
	AccountService account.Service

	AccountHandler      *accounthandler.AccountHandler
	AdminAccountHandler *accounthandler.AdminAccountHandler
	ApplicationHandler  *applicationhandler.ApplicationHandler
	TrackHandler        *contenthandler.TrackHandler
	ReelHandler         *contenthandler.ReelHandler
	AdminContentHandler *contenthandler.AdminContentHandler
	EngagementHandler   *engagementhandler.EngagementHandler
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	// ========================================
	// INFRASTRUCTURE
	// ========================================

	db := database.NewPostgresDB(cfg.PoolConfig())
	if err := db.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisCache := rediscache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	gateway, err := storage.NewMinIOGateway(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}

	verifier := identity.NewJWTVerifier(cfg.Identity)
	notifier := email.NewAsynqNotifier(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// ========================================
	// DOMAINS
	// ========================================

	accountRepository := accountrepo.NewPostgresRepository(db.Pool, redisCache)
	applicationRepository := applicationrepo.NewPostgresRepository(db.Pool, redisCache)
	contentRepository := contentrepo.NewPostgresRepository(db.Pool)
	engagementRepository := engagementrepo.NewPostgresRepository(db.Pool)

	accountSvc := accountservice.NewAccountService(accountRepository, notifier)
	applicationSvc := applicationservice.NewApplicationService(applicationRepository, notifier)
	contentSvc := contentservice.NewContentService(contentRepository, gateway)
	engagementSvc := engagementservice.NewEngagementService(engagementRepository)

	return &Container{
		Config:   cfg,
		DB:       db,
		Cache:    redisCache,
		Gateway:  gateway,
		Verifier: verifier,
		Notifier: notifier,

		AccountService:      accountSvc,
		AccountHandler:      accounthandler.NewAccountHandler(accountSvc),
		AdminAccountHandler: accounthandler.NewAdminAccountHandler(accountSvc),
		ApplicationHandler:  applicationhandler.NewApplicationHandler(applicationSvc),
		TrackHandler:        contenthandler.NewTrackHandler(contentSvc),
		ReelHandler:         contenthandler.NewReelHandler(contentSvc),
		AdminContentHandler: contenthandler.NewAdminContentHandler(contentSvc),
		EngagementHandler:   engagementhandler.NewEngagementHandler(engagementSvc),
	}, nil
}

// Cleanup releases external connections. Called on shutdown.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
