package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"tokenscope/config"
	"tokenscope/internal/cache"
	"tokenscope/internal/dexapi"
	"tokenscope/internal/explorer"
	"tokenscope/internal/server"
	"tokenscope/internal/session"
	"tokenscope/internal/stats"
	"tokenscope/internal/transport"
	"tokenscope/internal/ws"
	"tokenscope/models"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Every upstream call flows through the instrumented transport so the
	// session tracker sees the full network timeline of each stat run.
	httpClient := transport.New(cfg.HTTPTimeout, cfg.SnippetLimit, log)

	tracker := session.NewTracker()
	httpClient.AddListener(session.ListenerID, tracker.Handle)

	ex := explorer.NewClient(cfg.ExplorerBaseURL, httpClient, log)
	dex := dexapi.NewClient(cfg.DexBaseURL, cfg.ChainID, httpClient, log)
	workspace := cache.New(ex, dex, cfg, log)
	if cfg.DefaultToken != "" {
		workspace.SelectToken(cfg.DefaultToken)
		log.Info().Str("token", cfg.DefaultToken).Msg("default token selected")
	}

	registry := stats.NewRegistry()
	runner := stats.NewRunner(registry, tracker, workspace, log)

	hub := ws.NewHub(log)
	runner.SetNotifier(func(msgType string, payload interface{}) {
		hub.Broadcast(msgType, tracker.SessionID(), payload)
	})
	tracker.SetPublisher(func(sessionID string, ev models.NetworkEvent) {
		hub.Broadcast("network_event", sessionID, ev)
	})

	srv := server.New(":"+cfg.Port, runner, hub, log)

	log.Info().
		Int("stats", registry.Len()).
		Str("port", cfg.Port).
		Msg("stat engine starting")

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutdown signal received")
		cancel()
	}()

	if err := srv.Start(ctx); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
	log.Info().Msg("graceful shutdown completed")
}
