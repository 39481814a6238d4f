package setup

import (
	"context"
	"log"

	"github.com/wildsight/wildsight/internal/database"
	"github.com/wildsight/wildsight/internal/redis"
	"github.com/wildsight/wildsight/internal/setup/config"
	"github.com/wildsight/wildsight/internal/verification"
	"go.uber.org/zap"
)

// App contains all the common setup components.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DBLogger     *zap.Logger
	DB           database.Client
	RedisManager *redis.Manager
}

// InitializeApp performs common setup tasks and returns an App.
func InitializeApp(ctx context.Context, logDir string) (*App, error) {
	// Load configuration
	cfg, configPath, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Initialize logging
	logger, dbLogger, err := GetLoggers(logDir, cfg.Common.Debug.LogLevel, cfg.Common.Debug.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded configuration", zap.String("configPath", configPath))

	// Initialize Redis manager and the recompute lock client
	redisManager := redis.NewManager(&cfg.Common.Redis, logger)

	lockClient, err := redisManager.GetClient(redis.LockDBIndex)
	if err != nil {
		logger.Fatal("Failed to create lock Redis client", zap.Error(err))
		return nil, err
	}
	locker := redis.NewLocker(lockClient, logger)

	// Initialize database connection
	db, err := database.NewConnection(
		ctx, &cfg.Common.PostgreSQL, thresholdsFromConfig(&cfg.Common.Verification),
		locker, dbLogger, true,
	)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
	}, nil
}

// Cleanup performs cleanup tasks.
func (a *App) Cleanup() {
	if err := a.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}
	if err := a.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
	a.RedisManager.Close()
}

// thresholdsFromConfig maps configured verification thresholds onto the
// decision function's thresholds, keeping the standard values for anything
// unset.
func thresholdsFromConfig(cfg *config.Verification) verification.Thresholds {
	thresholds := verification.DefaultThresholds()
	if cfg.ApproveThreshold > 0 {
		thresholds.ApproveThreshold = cfg.ApproveThreshold
	}
	if cfg.MinVotesForRejection > 0 {
		thresholds.MinVotesForRejection = cfg.MinVotesForRejection
	}
	return thresholds
}
