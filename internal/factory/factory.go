package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/questlab/questmaster/internal/dependencies/clock"
	"github.com/questlab/questmaster/internal/dependencies/random"
	"github.com/questlab/questmaster/internal/services/game"
	"github.com/questlab/questmaster/internal/services/leaderboard"
	"github.com/questlab/questmaster/internal/services/lobby"
	"github.com/questlab/questmaster/internal/services/oracle"
	"github.com/questlab/questmaster/internal/services/qr"
	"github.com/questlab/questmaster/internal/storage"
	"github.com/questlab/questmaster/internal/storage/memory"
	postgresstorage "github.com/questlab/questmaster/internal/storage/postgres"
	redisstorage "github.com/questlab/questmaster/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// Oracle type constants
const (
	OracleTypeGemini = "gemini"
	OracleTypeFixed  = "fixed"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Oracle oracle.Oracle

	// Services
	LobbyController    *lobby.Controller
	GameController     *game.Controller
	LeaderboardService *leaderboard.Service
	QRService          *qr.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *postgresstorage.Config
	// OracleType selects the answer backend ("gemini" or "fixed")
	// If empty, defaults to "fixed" so the server runs without credentials
	OracleType string
	// GeminiConfig holds Gemini API settings (required if OracleType is "gemini")
	GeminiConfig *oracle.GeminiConfig
	// BaseURL is the externally visible URL used when rendering join codes
	BaseURL string
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := postgresstorage.New(ctx, *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create the oracle based on type
	var orc oracle.Oracle
	oracleType := cfg.OracleType
	if oracleType == "" {
		oracleType = OracleTypeFixed
	}

	switch oracleType {
	case OracleTypeFixed:
		orc = oracle.NewFixed()
	case OracleTypeGemini:
		if cfg.GeminiConfig == nil {
			return nil, errors.New("GeminiConfig required when OracleType is gemini")
		}
		if cfg.GeminiConfig.APIKey == "" {
			return nil, errors.New("GeminiConfig.APIKey required when OracleType is gemini")
		}
		orc = oracle.NewGemini(*cfg.GeminiConfig)
	default:
		return nil, errors.New("invalid OracleType: must be 'gemini' or 'fixed'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, orc, cfg.BaseURL, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	orc oracle.Oracle,
	baseURL string,
	logger *slog.Logger,
) *App {
	lobbyController := lobby.NewController(store, clk, rnd, logger)
	gameController := game.NewController(lobbyController, orc, clk, logger)
	leaderboardService := leaderboard.New(lobbyController)
	qrService := qr.New(baseURL)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Oracle:             orc,
		LobbyController:    lobbyController,
		GameController:     gameController,
		LeaderboardService: leaderboardService,
		QRService:          qrService,
	}
}
