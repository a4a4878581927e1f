package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okhotin/tubedeck/app/aggregator"
	"github.com/okhotin/tubedeck/app/api"
	"github.com/okhotin/tubedeck/app/cfg"
	"github.com/okhotin/tubedeck/app/feed"
	"github.com/okhotin/tubedeck/app/library"
	"github.com/okhotin/tubedeck/app/resolver"
	"github.com/okhotin/tubedeck/app/store"
	"github.com/okhotin/tubedeck/app/youtube"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting TubeDeck server", "version", appCfg.Version)

	// Channel/folder store; the library keeps working in memory when
	// the database cannot be opened, it just loses durability.
	var libraryStore store.Store
	sqliteStore, err := store.NewSQLiteStore(appCfg.DataDir)
	if err != nil {
		slog.Warn("Persistent storage unavailable, running in memory", "error", err)
		libraryStore = store.NewMemoryStore()
	} else {
		libraryStore = sqliteStore
	}
	defer libraryStore.Close()

	lib := library.New(libraryStore)

	if appCfg.ImportFile != "" {
		if err := lib.ImportFromFile(appCfg.ImportFile); err != nil {
			slog.Error("Import failed", "file", appCfg.ImportFile, "error", err)
			os.Exit(1)
		}
	}

	// Upstream client; without a key the service still serves the
	// library and reports the missing credential per request.
	var client youtube.Client
	if appCfg.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY not set, upstream operations disabled")
		client = youtube.UnconfiguredClient{}
	} else {
		apiClient, err := youtube.NewAPIClient(context.Background(), appCfg.YouTubeAPIKey, appCfg.SearchMaxResults)
		if err != nil {
			slog.Error("Failed to create YouTube client", "error", err)
			os.Exit(1)
		}
		client = apiClient
	}

	var fallback aggregator.Lister
	if appCfg.RSSFallback {
		slog.Info("RSS fallback enabled for failing channel fetches")
		fallback = youtube.NewRSSLister(appCfg.UserAgent)
	}

	agg := aggregator.New(client, fallback, appCfg.VideosPerChannel)
	res := resolver.New(client)

	handler := api.NewHandler(lib, res, agg, feed.NewGenerator())
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("TubeDeck server shutdown complete")
}
