package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-signalist/internal/marketdata"
	"go-signalist/internal/notifier/config"
	"go-signalist/internal/notifier/delivery/consumer"
	"go-signalist/internal/notifier/repository"
	"go-signalist/internal/notifier/service"
	"go-signalist/internal/notifier/strategy"
	"go-signalist/internal/notifier/workflow"
	"go-signalist/pkg/common"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/mailer"
	"go-signalist/pkg/postgres"
	"go-signalist/pkg/redis"

	"google.golang.org/genai"

	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the notifier service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Notifier Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Create the consumer groups if they don't exist
	// MKSTREAM creates the stream if it doesn't exist
	for _, stream := range []string{common.RedisStreamUserCreated, common.RedisStreamSendDailyNews, common.RedisStreamPriceAlert} {
		if err := redisClient.XGroupCreateMkStream(context.Background(), stream, common.RedisStreamGroup, "0").Err(); err != nil {
			if err.Error() != "BUSYGROUP Consumer Group name already exists" {
				appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err), logger.StringField("stream", stream))
			}
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	alertRepo := repository.NewAlertRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)

	// Initialize the market data gateway
	gateway := marketdata.NewFinnhubGateway(marketdata.Config{
		BaseURL: cfg.Finnhub.BaseURL,
		APIKey:  cfg.Finnhub.APIKey,
	}, appLogger)

	// Initialize the AI repository
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
	}
	aiRepo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
	}

	// Initialize the mail transport
	mailNotifier := mailer.NewClient(mailer.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		FromName:    cfg.SMTP.FromName,
		FromAddress: cfg.SMTP.FromAddress,
	})

	// Step runner: email sends are retried, everything else surfaces the first
	// failure.
	sendPolicy := workflow.RetryPolicy{
		MaxAttempts: cfg.Notifier.StepMaxAttempts,
		Interval:    cfg.Notifier.StepRetryInterval,
	}
	runner := workflow.NewRunner(appLogger, workflow.NoRetry, map[string]workflow.RetryPolicy{
		"send-welcome-email": sendPolicy,
		"send-alert-email":   sendPolicy,
	})

	// Initialize strategies
	strategies := []strategy.NotificationStrategy{
		strategy.NewWelcomeEmailStrategy(appLogger, runner, userRepo, aiRepo, mailNotifier),
		strategy.NewDailyDigestStrategy(appLogger, runner, userRepo, watchlistRepo, gateway, aiRepo, mailNotifier),
		strategy.NewPriceAlertStrategy(appLogger, runner, alertRepo, mailNotifier, cfg.Notifier.ResendCooldown),
	}

	// Initialize notifier service
	notifierSvc := service.NewNotifierService(redisClient.Client, appLogger, strategies, cfg.Redis.StreamMaxLen)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, notifierSvc, appLogger)
	if err := redisConsumer.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start Redis consumer", logger.ErrorField(err))
	}

	appLogger.Info("Notifier service started. Waiting for events...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down notifier service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Notifier service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "notifier-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-notifier.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing notifier-service CLI: %s\n", err)
		os.Exit(1)
	}
}
