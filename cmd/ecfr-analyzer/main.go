package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/adapters/driven/ecfr"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/adapters/driven/postgres"
	redisadapter "github.com/benjaminclauss/eCFR-Analyzer/internal/adapters/driven/redis"
	httpadapter "github.com/benjaminclauss/eCFR-Analyzer/internal/adapters/driving/http"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/services"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/readability"
)

var version = "dev"

func main() {
	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "batch")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("ecfr-analyzer %s starting in %s mode", version, mode)

	// Configuration from environment
	port := getEnvInt("PORT", 8080)
	redisURL := getEnv("REDIS_URL", "")
	databaseURL := getEnv("DATABASE_URL", "")
	apiBaseURL := getEnv("ECFR_API_URL", ecfr.DefaultBaseURL)
	maxConcurrency := getEnvInt("MAX_CONCURRENT_CALCULATIONS", 1)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Metrics store (Redis if available, otherwise PostgreSQL) =====
	var store driven.MetricsStore
	switch {
	case redisURL != "":
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		store = redisadapter.NewMetricsStore(redisClient)
		log.Println("Using Redis metrics store")

	case databaseURL != "":
		log.Println("Connecting to PostgreSQL...")
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(databaseURL))
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = postgres.NewMetricsStore(db)
		log.Println("Using PostgreSQL metrics store")

	default:
		log.Fatal("REDIS_URL or DATABASE_URL must be set")
	}

	// ===== eCFR client with title-XML caching =====
	client := ecfr.NewCachingClient(ecfr.NewClient(apiBaseURL))

	switch mode {
	case "batch":
		if err := runBatch(ctx, client, store, maxConcurrency); err != nil {
			log.Fatalf("Batch run failed: %v", err)
		}

	case "api":
		runAPI(port, store, client)

	case "all":
		if err := runBatch(ctx, client, store, maxConcurrency); err != nil {
			log.Fatalf("Batch run failed: %v", err)
		}
		runAPI(port, store, client)

	default:
		log.Fatalf("Unknown mode: %s (use: batch, api, or all)", mode)
	}
}

// runBatch fetches the agency directory and title metadata, then aggregates
// every agency's metrics into the store.
func runBatch(ctx context.Context, client driven.ECFRClient, store driven.MetricsStore, maxConcurrency int) error {
	logger := slog.Default()

	agencies, err := client.FetchAgencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch agency directory: %w", err)
	}
	titles, err := client.FetchTitles(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch title metadata: %w", err)
	}

	calculator := services.NewReferenceCalculator(client, readability.NewScorer(), logger)
	aggregator := services.NewAgencyAggregator(calculator, logger)
	orchestrator := services.NewBatchOrchestrator(services.BatchOrchestratorConfig{
		Aggregator: aggregator,
		Store:      store,
		Logger:     logger,
	})

	wordCounts, err := orchestrator.Run(ctx, agencies, domain.LatestIssueDates(titles), int64(maxConcurrency))
	if err != nil {
		return err
	}

	log.Printf("Batch run completed: %d of %d agencies persisted", len(wordCounts), len(agencies))
	return nil
}

func runAPI(port int, store driven.MetricsStore, client driven.ECFRClient) {
	cfg := httpadapter.Config{
		Host:    "0.0.0.0",
		Port:    port,
		Version: version,
	}

	server := httpadapter.NewServer(cfg, store, client)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
