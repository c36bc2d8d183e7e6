package bootstrap

import (
	"context"
	"path/filepath"
	"time"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/redisstore"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/internal/websocket"
	pktNats "notekeeper-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	FolderController    controller.IFolderController
	NoteController      controller.INoteController
	HealthController    controller.IHealthController
	WebSocketController controller.IWebSocketController

	// Session gate for protected routes
	AuthMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	rdb     *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	hubLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "websocket.log"))
	return NewContainerWithLogger(db, cfg, sysLogger, hubLogger)
}

// NewContainerWithLogger wires everything with the given loggers. Redis and NATS
// are only used when their URLs are configured.
func NewContainerWithLogger(db *gorm.DB, cfg *config.Config, sysLogger, hubLogger logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)

	// 3. Infrastructure
	rdb := connectRedis(cfg.Infra.RedisURL, sysLogger)

	var natsPub *pktNats.Publisher
	if cfg.Infra.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.Infra.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			natsPub = pub
		}
	}

	var denylist contract.TokenDenylist
	if rdb != nil {
		denylist = redisstore.NewTokenDenylist(rdb)
	} else {
		denylist = memory.NewTokenDenylist()
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, hubLogger)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Infra.EventTopic, pubSub, natsPub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Infra.EventTopic, wsHub, sysLogger)

	authService := service.NewAuthService(uowFactory, denylist, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)
	folderService := service.NewFolderService(
		uowFactory,
		noteService,
		service.NewCascadeCoordinator(sysLogger),
		publisherService,
		cfg.Folder,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService, cfg.Auth),
		FolderController:    controller.NewFolderController(folderService),
		NoteController:      controller.NewNoteController(noteService),
		HealthController:    controller.NewHealthController(db),
		WebSocketController: controller.NewWebSocketController(authService, wsHub, cfg.Auth.CookieName),
		AuthMiddleware:      serverutils.NewJwtMiddleware(authService, cfg.Auth.CookieName),
		ConsumerService:     consumerService,
		WebSocketHub:        wsHub,
		Logger:              sysLogger,
		pubSub:              pubSub,
		natsPub:             natsPub,
		rdb:                 rdb,
	}
}

// Start runs the hub and the change-event consumer until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if err := c.pubSub.Close(); err != nil {
		c.Logger.Warn("Bootstrap", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, continuing without it", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
