package bootstrap

import (
	"context"
	"log"
	"strings"
	"time"

	"prep-tool-be/internal/config"
	"prep-tool-be/internal/controller"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/contract"
	"prep-tool-be/internal/repository/implementation"
	"prep-tool-be/internal/repository/memory"
	"prep-tool-be/internal/repository/unitofwork"
	"prep-tool-be/internal/service"
	"prep-tool-be/internal/websocket"
	"prep-tool-be/pkg/events"
	pktNats "prep-tool-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	EventsTopic = "prep.events"

	summaryCacheTTL = 5 * time.Minute
	runtimeIdleTTL  = time.Hour
)

type Container struct {
	// Controllers
	SessionController     controller.ISessionController
	ImportController      controller.IImportController
	AuthController        controller.IAuthController
	ViewerStateController controller.IViewerStateController
	RuntimeController     controller.IRuntimeController
	EditorController      controller.IEditorController

	// WebSockets
	RuntimeHandler *websocket.RuntimeHandler
	WebSocketHub   *websocket.Hub

	// Auth decides how the API group is guarded.
	AuthService service.IAuthService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// Close releases external connections opened by NewContainer.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	return NewContainerWithLogger(db, cfg, sysLogger)
}

// NewContainerWithLogger wires everything around an existing logger; tests pass a nop logger.
func NewContainerWithLogger(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Storage
	uowFactory := unitofwork.NewRepositoryFactory(db)
	summaries := memory.NewSummaryCache(summaryCacheTTL)
	instances := memory.NewRuntimeRepository(runtimeIdleTTL)

	var rdb *redis.Client
	var viewerRepo contract.ViewerStateRepository
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		viewerRepo = implementation.NewRedisViewerStateRepository(rdb)
		c.closers = append(c.closers, func() { rdb.Close() })
	} else {
		log.Printf("[INFO] REDIS_URL not set, viewer state is kept in memory")
		viewerRepo = memory.NewViewerStateRepository()
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	var relay service.EventRelay
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			relay = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		// Writes made by other instances make our listing stale.
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			err = natsSub.Subscribe(pktNats.Subject(">"), "", func(ctx context.Context, ev events.Event) error {
				if !strings.HasPrefix(ev.EventType(), "SESSION_") {
					return nil
				}
				summaries.Invalidate()
				sysLogger.Debug("EVENTS", "Session listing invalidated", map[string]interface{}{
					"type":       ev.EventType(),
					"session_id": events.SessionId(ev),
				})
				return nil
			})
			if err != nil {
				log.Printf("[WARN] Failed to subscribe to session events: %v", err)
			}
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 3. WebSocket Hub
	hubLogger := sysLogger
	if cfg.App.RuntimeLogFilePath != "" {
		hubLogger = logger.NewIsolatedLogger(cfg.App.RuntimeLogFilePath)
	}
	wsHub := websocket.NewHub(rdb, hubLogger)
	go wsHub.Run(context.Background())

	// 4. Services
	publisherService := service.NewPublisherService(EventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, EventsTopic, relay, sysLogger)

	authService, err := service.NewAuthService(cfg.Auth, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize auth: %v", err)
	}

	sessionService := service.NewSessionService(uowFactory, summaries, publisherService, sysLogger)
	importService := service.NewImportService(sessionService, cfg.Import.Root, sysLogger)
	viewerStateService := service.NewViewerStateService(viewerRepo, sysLogger)
	runtimeService := service.NewRuntimeService(
		sessionService,
		viewerStateService,
		instances,
		publisherService,
		wsHub,
		sysLogger,
		time.Now,
	)
	editorService := service.NewEditorService(sessionService, instances, sysLogger)

	// 5. Controllers
	c.SessionController = controller.NewSessionController(sessionService)
	c.ImportController = controller.NewImportController(importService)
	c.AuthController = controller.NewAuthController(authService)
	c.ViewerStateController = controller.NewViewerStateController(viewerStateService)
	c.RuntimeController = controller.NewRuntimeController(runtimeService)
	c.EditorController = controller.NewEditorController(editorService)
	c.RuntimeHandler = websocket.NewRuntimeHandler(wsHub, runtimeService, sysLogger)
	c.WebSocketHub = wsHub
	c.AuthService = authService
	c.ConsumerService = consumerService

	return c
}
