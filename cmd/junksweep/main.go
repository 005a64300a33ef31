package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"junksweep/internal/config"
	"junksweep/internal/exitcodes"
	"junksweep/internal/history"
	"junksweep/internal/logging"
	"junksweep/internal/metrics"
	"junksweep/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "/etc/junksweep/config.yaml", "Path to configuration file")
	dryRun := flag.Bool("dry-run", false, "Measure junk without deleting anything")
	once := flag.Bool("once", false, "Run one reclaim cycle and exit (no loop)")
	flag.Parse()

	// Load configuration before the rotating logger so rotation settings apply
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger := logging.New()
		logger.Printf("ERROR: Failed to load config: %v", err)
		os.Exit(exitcodes.InvalidConfig)
	}

	logger := logging.NewWithConfig(cfg)

	logger.Println("JunkSweep Daemon Starting...")
	logger.Printf("Config file: %s", *configPath)
	logger.Printf("Target volume: %s", cfg.Volume)
	if *dryRun || !cfg.Apply {
		logger.Println("DRY RUN MODE: No files will be deleted")
	}

	// Initialize metrics (Prometheus)
	metrics.Init()
	if cfg.Prometheus.Port > 0 {
		addr := cfg.PrometheusAddress()
		logger.Printf("Starting Prometheus metrics on %s", addr)
		metrics.StartServer(addr, logger)
	}

	// Open the run history database
	var db *history.RunDB
	if cfg.HistoryDBPath != "" {
		logger.Printf("Opening history database: %s", cfg.HistoryDBPath)
		db, err = history.NewRunDB(cfg.HistoryDBPath)
		if err != nil {
			logger.Printf("ERROR: Failed to open history database: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("ERROR: Failed to close history database: %v", err)
			}
		}()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	logger.Println("Starting reclaim scheduler...")
	if *once {
		if err := scheduler.RunOnceWithDB(ctx, cfg, *dryRun, logger, db); err != nil {
			logger.Printf("ERROR: Reclaim run failed: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		logger.Println("Reclaim run completed successfully")
	} else {
		if err := scheduler.RunWithDB(ctx, cfg, *dryRun, logger, db); err != nil && err != context.Canceled {
			logger.Printf("ERROR: Scheduler failed: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
	}

	logger.Println("JunkSweep Daemon stopped")
}
