package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/delivery/consumer"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/internal/executor/service"
	"golang-stock-sentiment/internal/executor/strategy"
	"golang-stock-sentiment/internal/sentiment"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/postgres"
	"golang-stock-sentiment/pkg/redis"
	"golang-stock-sentiment/pkg/telegram"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	configPath   string
	syncLookback int
	syncNotify   bool
	syncBackfill bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sentiment service and consumes ticker sync tasks",
	Run:   runServe,
}

var syncCmd = &cobra.Command{
	Use:   "sync <ticker>",
	Short: "Runs the sentiment pipeline for one ticker and prints the result",
	Args:  cobra.ExactArgs(1),
	Run:   runSync,
}

// app holds everything both commands share.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	db       *postgres.DB
	notifier telegram.Notifier
	syncer   service.SyncService
}

func newApp(ctx context.Context) *app {
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

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	priceRepo := repository.NewPriceRepository(db.DB)
	newsRepo := repository.NewNewsArticleRepository(db.DB)
	wordCountRepo := repository.NewWordCountRepository(db.DB)
	combinedRepo := repository.NewCombinedSentimentRepository(db.DB)
	contentRepo := repository.NewArticleContentRepository(cfg, appLogger)
	priceProvider := repository.NewTiingoRepository(cfg, appLogger)

	// Initialize news provider
	var newsProvider repository.NewsProvider
	switch cfg.News.Provider {
	case "rss":
		newsProvider = repository.NewRSSNewsRepository(cfg, appLogger)
	case "polygon":
		newsProvider = repository.NewPolygonNewsRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Invalid news provider specified in config", zap.String("provider", cfg.News.Provider))
	}

	// Initialize classifier
	var classifier repository.SentimentClassifier
	switch cfg.Classifier.Provider {
	case "finbert":
		classifier = repository.NewFinbertRepository(cfg, appLogger)
	case "gemini":
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", zap.Error(err))
		}
		classifier = repository.NewGeminiRepository(cfg, appLogger, genAiClient.Models)
	default:
		appLogger.Fatal("Invalid classifier provider specified in config", zap.String("provider", cfg.Classifier.Provider))
	}

	lexicon, err := sentiment.LoadLexicon(cfg.Sentiment.LexiconPath)
	if err != nil {
		appLogger.Fatal("Failed to load lexicon", zap.Error(err), zap.String("path", cfg.Sentiment.LexiconPath))
	}

	// Telegram is optional
	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
		}
	}

	// Initialize pipeline
	correlator := service.NewPriceCorrelator(cfg.Sentiment, appLogger, priceRepo, wordCountRepo, combinedRepo)
	orchestrator := service.NewScoringOrchestrator(
		cfg.Sentiment,
		appLogger,
		service.NewDeduplicator(wordCountRepo),
		contentRepo,
		classifier,
		sentiment.NewWordCounter(lexicon),
		correlator,
		wordCountRepo,
	)
	aggregator := service.NewDailyAggregator(appLogger, wordCountRepo, combinedRepo)
	syncer := service.NewSyncService(
		cfg,
		appLogger,
		priceProvider,
		newsProvider,
		priceRepo,
		newsRepo,
		combinedRepo,
		orchestrator,
		aggregator,
		correlator,
		notifier,
	)

	return &app{cfg: cfg, logger: appLogger, db: db, notifier: notifier, syncer: syncer}
}

func (a *app) close() {
	if sqlDB, err := a.db.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newApp(ctx)
	defer a.close()
	cfg, appLogger := a.cfg, a.logger

	appLogger.Info("Starting Sentiment Service", zap.String("name", cfg.App.Name))

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
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist
	if err := redisClient.EnsureGroup(ctx, common.RedisStreamTickerSync, common.RedisStreamGroup); err != nil {
		appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
	}

	// Initialize Strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewTickerSyncStrategy(appLogger, a.syncer),
		strategy.NewHorizonBackfillStrategy(appLogger, a.syncer),
	}

	// Initialize executor service
	executionRepo := repository.NewSyncExecutionRepository(a.db.DB)
	executorSvc := service.NewExecutorService(cfg, redisClient.Client, executionRepo, appLogger, a.notifier, strategies)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, executorSvc, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Sentiment service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down sentiment service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Sentiment service stopped.")
}

func runSync(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx)
	defer a.close()

	var (
		result *dto.SyncResult
		err    error
	)
	if syncBackfill {
		result, err = a.syncer.ResolveHorizons(ctx, args[0])
	} else {
		result, err = a.syncer.Sync(ctx, dto.SyncTask{
			Ticker:       args[0],
			TaskType:     entity.TaskTypeTickerSync,
			LookbackDays: syncLookback,
			Notify:       syncNotify,
		})
	}

	if result != nil {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
	}
	if err != nil {
		a.logger.Error("Sync finished with errors", logger.ErrorField(err))
		a.close()
		os.Exit(1)
	}
}

func main() {
	rootCmd := &cobra.Command{Use: "sentiment-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-sentiment.yaml", "Path to the configuration file")

	syncCmd.Flags().IntVar(&syncLookback, "lookback", 0, "News lookback in days (0 uses the configured default)")
	syncCmd.Flags().BoolVar(&syncNotify, "notify", false, "Send the Telegram digest when done")
	syncCmd.Flags().BoolVar(&syncBackfill, "backfill", false, "Only resolve pending price horizons")

	rootCmd.AddCommand(serveCmd, syncCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing sentiment-service CLI: %s\n", err)
		os.Exit(1)
	}
}
