package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/cardtable/cardtable/internal/dependencies/clock"
	"github.com/cardtable/cardtable/internal/dependencies/random"
	"github.com/cardtable/cardtable/internal/services/auth"
	"github.com/cardtable/cardtable/internal/services/game"
	"github.com/cardtable/cardtable/internal/services/room"
	"github.com/cardtable/cardtable/internal/services/sweep"
	"github.com/cardtable/cardtable/internal/storage"
	"github.com/cardtable/cardtable/internal/storage/memory"
	redisstorage "github.com/cardtable/cardtable/internal/storage/redis"
	"github.com/cardtable/cardtable/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.RoomStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	RoomController *room.Controller
	Dispatcher     *game.Dispatcher
	Sweeper        *sweep.Sweeper

	// Realtime gateway
	Hub       *ws.Hub
	WSHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// JWTSecret signs guest tokens (required)
	JWTSecret string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// SweepConfig holds sweeper timings (optional)
	// If zero value, defaults to sweep.DefaultConfig()
	SweepConfig sweep.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWTSecret is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	// Create storage based on type
	var store storage.RoomStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	authService := auth.New(cfg.JWTSecret, clk, authCfg)
	roomController := room.NewController(store, clk, rnd)
	dispatcher := game.NewDispatcher(store, rnd)
	sweeper := sweep.New(store, clk, cfg.SweepConfig, logger)

	hub := ws.NewHub(logger)
	wsHandler := ws.NewHandler(hub, roomController, dispatcher, authService, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AuthService:    authService,
		RoomController: roomController,
		Dispatcher:     dispatcher,
		Sweeper:        sweeper,
		Hub:            hub,
		WSHandler:      wsHandler,
	}, nil
}
