package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guardbot/internal/adapters/discord"
	"guardbot/internal/adapters/storage/postgres"
	"guardbot/internal/config"
	"guardbot/internal/core/services/automod"
	"guardbot/internal/core/services/leveling"
	"guardbot/internal/core/services/voicetime"
	"guardbot/internal/handlers"
)

type App struct {
	config             *config.Config
	store              *postgres.PostgresStore
	discord            *discordgo.Session
	sweeper            *voicetime.Service
	metricsServer      *http.Server
	sweeperCtx         context.Context
	sweeperCancel      context.CancelFunc
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to storage", "error", err)
		return nil, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("Failed to ensure database schema", "error", err)
		store.Close()
		return nil, err
	}

	session, err := NewDiscordSession(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	adapter := discord.NewAdapter(session)
	autoMod := automod.NewEngine(store, adapter, adapter)
	levelEngine := leveling.NewEngine(store, adapter, adapter)
	voiceTracker := voicetime.NewTracker()
	sweeper := voicetime.NewService(voiceTracker, levelEngine, cfg.VoiceSweep)

	events := &handlers.EventHandler{
		AutoMod:  autoMod,
		Leveling: levelEngine,
		Voice:    voiceTracker,
		Enforcer: adapter,
	}

	botHandlers := &handlers.BotHandler{Config: cfg, Store: store, Leveling: levelEngine}
	router := handlers.NewRouter()
	router.Register("rank", botHandlers.Rank)
	router.Register("leaderboard", botHandlers.Leaderboard)
	router.Register("guard-config", handlers.WithAdmin(botHandlers.GuardConfig))
	router.Register("level-role-add", handlers.WithAdmin(botHandlers.LevelRoleAdd))
	router.Register("level-role-remove", handlers.WithAdmin(botHandlers.LevelRoleRemove))
	router.Register("level-set", handlers.WithAdmin(botHandlers.SetLevel))
	router.Register("level-reset", handlers.WithAdmin(botHandlers.ResetUser))

	session.AddHandler(handlers.ReadyHandler)
	session.AddHandler(router.HandleFunc())
	session.AddHandler(events.MessageCreate())
	session.AddHandler(events.VoiceStateUpdate())

	return &App{
		config:  cfg,
		store:   store,
		discord: session,
		sweeper: sweeper,
	}, nil
}

func (a *App) Run() error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	commands := GetApplicationCommands()
	CleanupCommands(a.discord, a.registeredCommands, a.discord.State.User.ID)
	a.registeredCommands = RegisterCommands(a.discord, commands, a.discord.State.User.ID)

	a.startMetricsServer()

	a.sweeperCtx, a.sweeperCancel = context.WithCancel(context.Background())
	go a.sweeper.Start(a.sweeperCtx)

	slog.Info("Guard bot is running")
	return nil
}

func (a *App) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server error", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	if a.sweeperCancel != nil {
		a.sweeperCancel()
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			slog.Error("Failed to stop metrics server", "error", err)
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			slog.Error("Failed to close discord session", "error", err)
		}
	}

	if a.store != nil {
		a.store.Close()
	}

	return nil
}
