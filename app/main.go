package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hafizhr/kliping/app/api"
	"github.com/hafizhr/kliping/app/artifact"
	"github.com/hafizhr/kliping/app/cache"
	"github.com/hafizhr/kliping/app/catalog"
	"github.com/hafizhr/kliping/app/cfg"
	"github.com/hafizhr/kliping/app/config"
	"github.com/hafizhr/kliping/app/news"
	"github.com/hafizhr/kliping/app/scrape"
	"github.com/hafizhr/kliping/app/trending"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if err := createDirectories(appCfg); err != nil {
		log.Fatal("Failed to create directories:", err)
	}

	logFile, err := setupLogging(appCfg)
	if err != nil {
		log.Fatal("Failed to set up logging:", err)
	}
	defer logFile.Close()

	slog.Info("Starting Kliping server...", "version", appCfg.Version)

	sources, err := config.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load source configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Source configuration ready", "sources", len(sources.NewsSources))

	// Fetch engines
	static := scrape.NewStaticFetcher(appCfg.UserAgent, time.Duration(appCfg.FetchTimeout)*time.Second)
	rendered := scrape.NewRenderedFetcher(appCfg.UserAgent,
		time.Duration(appCfg.RenderTimeout)*time.Second,
		time.Duration(appCfg.ScrollSettle)*time.Second,
		appCfg.DebugDir)

	// Acquirers
	newsAcquirer := news.NewAcquirer(sources.NewsSources, static, rendered)
	catalogAcquirer := catalog.NewAcquirer(sources.Catalog, rendered, appCfg.DebugDir)
	trendingAcquirer := trending.NewAcquirer(sources.Trending, appCfg.UserAgent,
		time.Duration(appCfg.FetchTimeout)*time.Second, static)

	// Persistence and the freshness gate in front of it
	store := artifact.NewStore(appCfg.ResultsDir)
	freshness := cache.New(store, newsAcquirer, catalogAcquirer, trendingAcquirer)

	handler := api.NewHandler(freshness)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // cache misses scrape synchronously
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(context.Background())
	defer cancelRefresh()
	startBackgroundRefresh(refreshCtx, freshness, appCfg.RefreshInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")
	cancelRefresh()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}

func createDirectories(appCfg *cfg.Cfg) error {
	dirs := []string{
		appCfg.ResultsDir,
		appCfg.LogsDir,
		filepath.Join(appCfg.DebugDir, "screenshots"),
		filepath.Join(appCfg.DebugDir, "html"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return nil
}

// setupLogging sends structured logs to stderr and a timestamped log file.
func setupLogging(appCfg *cfg.Cfg) (*os.File, error) {
	name := fmt.Sprintf("scraper_%s.log", time.Now().Format("20060102_150405"))
	logFile, err := os.Create(filepath.Join(appCfg.LogsDir, name))
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, logFile), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return logFile, nil
}

// startBackgroundRefresh re-acquires every category on a fixed interval.
// Disabled when the interval is zero; on-demand refresh through the
// freshness gate is the default mode of operation.
func startBackgroundRefresh(ctx context.Context, freshness *cache.Cache, intervalSec int) {
	if intervalSec <= 0 {
		return
	}

	interval := time.Duration(intervalSec) * time.Second
	slog.Info("Background refresh enabled", "interval", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				counts, err := freshness.RefreshAll(ctx)
				if err != nil {
					slog.Error("Background refresh failed", "error", err)
					continue
				}
				slog.Info("Background refresh completed",
					"news", counts.News, "catalog", counts.Catalog, "trending", counts.Trending)
			}
		}
	}()
}
