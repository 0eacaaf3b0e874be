package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/questlab/questmaster/internal/api"
	"github.com/questlab/questmaster/internal/factory"
	"github.com/questlab/questmaster/internal/services/oracle"
	postgresstorage "github.com/questlab/questmaster/internal/storage/postgres"
	redisstorage "github.com/questlab/questmaster/internal/storage/redis"
)

func main() {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:          "questmaster-server",
		Short:        "QuestMaster lobby and question coordinator",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cfg.bindFlags(cmd.Flags())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.logLevel),
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.storageType,
		OracleType:  cfg.oracleType,
		BaseURL:     cfg.baseURL,
	}

	switch cfg.storageType {
	case factory.StorageTypeRedis:
		if cfg.redisURL == "" {
			logger.Error("QM_REDIS_URL required when storage is redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		redisCfg.LobbyTTL = cfg.redisTTL
		factoryCfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		if cfg.postgresURL == "" {
			logger.Error("QM_POSTGRES_URL required when storage is postgres")
			os.Exit(1)
		}
		pgCfg := postgresstorage.DefaultConfig()
		pgCfg.URL = cfg.postgresURL
		factoryCfg.PostgresConfig = &pgCfg
	}

	if cfg.oracleType == factory.OracleTypeGemini {
		geminiCfg := oracle.DefaultGeminiConfig()
		geminiCfg.APIKey = cfg.geminiAPIKey
		if cfg.geminiModel != "" {
			geminiCfg.Model = cfg.geminiModel
		}
		factoryCfg.GeminiConfig = &geminiCfg
	}

	// Create application factory
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Storage.Close() }()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		LobbyController:    app.LobbyController,
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
		QRService:          app.QRService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.bind
	serverConfig.Port = cfg.port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
