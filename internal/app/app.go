package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/checkout-backend/internal/clients/redis"
	"github.com/yungbote/checkout-backend/internal/data/db"
	httpx "github.com/yungbote/checkout-backend/internal/http"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	events   redisclient.EventCache
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	// The webhook path works without redis, just slower on redeliveries.
	var events redisclient.EventCache
	if cfg.RedisAddr != "" {
		events, err = redisclient.NewEventCache(log)
		if err != nil {
			log.Warn("Redis event cache unavailable, continuing without it", "error", err)
			events = nil
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, events)
	handlerset := wireHandlers(log, serviceset)

	router := httpx.NewRouter(httpx.RouterConfig{
		Log:             log,
		OrderHandler:    handlerset.Order,
		CheckoutHandler: handlerset.Checkout,
		WebhookHandler:  handlerset.Webhook,
		HealthHandler:   handlerset.Health,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		events:   events,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.events != nil {
		_ = a.events.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
