package main

import (
	"CipherBot/internal/adapters/cipherservice"
	"CipherBot/internal/adapters/eventbus"
	"CipherBot/internal/adapters/metrics"
	"CipherBot/internal/adapters/postgres"
	"CipherBot/internal/adapters/security"
	"CipherBot/internal/adapters/telegram"
	_ "CipherBot/internal/bot/handlers" // registers the command handlers
	"CipherBot/internal/core/ports"
	"CipherBot/internal/history"
	"CipherBot/internal/shared/config"
	"CipherBot/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("bot_mode", cfg.Bot.Mode).
		Str("default_kind", string(cfg.DefaultKind)).
		Bool("history", cfg.HistoryEnabled()).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Event bus and metrics
	bus := eventbus.NewInMemoryEventBus(&baseLogger)
	metricsRecorder := metrics.NewRecorder(&baseLogger)
	metricsRecorder.Attach(bus)

	// 4. Optional history (database + at-rest encryption)
	var opRepo ports.OperationRepository
	if cfg.HistoryEnabled() {
		secSvc, err := security.NewAESServiceFromHex(cfg.EncryptionKey, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize security service")
		}

		db, err := postgres.NewDB(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to prepare database schema")
		}
		opRepo = postgres.NewOperationRepository(db, secSvc, &baseLogger)
	}
	recorder := history.NewRecorder(opRepo, &baseLogger)
	recorder.Attach(bus)

	// 5. Cipher service
	cipherSvc := cipherservice.NewCipherService(bus, metricsRecorder, &baseLogger)

	baseLogger.Info().Msg("All services initialized successfully")

	// 6. Run until signalled
	orchestrator := telegram.NewOrchestrator(cfg, cipherSvc, recorder, metricsRecorder, &baseLogger)
	if err := orchestrator.Start(ctx); err != nil {
		baseLogger.Error().Err(err).Msg("Bot stopped with error")
	}

	// Let pending history writes land before the pool closes.
	bus.Wait()
	baseLogger.Info().Msg("Shutdown complete")
}
