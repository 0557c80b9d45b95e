package telegram

import (
	"CipherBot/internal/bot"
	"CipherBot/internal/core/ports"
	"CipherBot/internal/shared/config"
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Background is a long-running side service (e.g. the metrics endpoint) started next to the bot.
type Background interface {
	Serve(ctx context.Context, addr string) error
}

// Orchestrator runs the bot server and any side services until the context ends.
type Orchestrator struct {
	cfg        *config.Config
	cipher     ports.CipherPort
	history    ports.HistoryPort
	metrics    Background // nil disables the metrics endpoint
	baseLogger *zerolog.Logger
	wg         sync.WaitGroup
}

// NewOrchestrator creates a new bot orchestrator.
func NewOrchestrator(
	cfg *config.Config,
	cipher ports.CipherPort,
	history ports.HistoryPort,
	metrics Background,
	baseLogger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		cipher:     cipher,
		history:    history,
		metrics:    metrics,
		baseLogger: baseLogger,
	}
}

// Start launches the bot and the metrics endpoint and waits for both to complete.
// A bot failure cancels the side services.
func (o *Orchestrator) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if o.metrics != nil && o.cfg.MetricsAddr != "" {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			if err := o.metrics.Serve(ctx, o.cfg.MetricsAddr); err != nil {
				o.baseLogger.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	err := o.startBot(ctx)
	if err != nil {
		o.baseLogger.Error().Err(err).Msg("Bot failed")
	}
	cancel()

	o.wg.Wait()
	return err
}

// startBot initializes and runs the bot.
func (o *Orchestrator) startBot(ctx context.Context) error {
	log := o.baseLogger.With().Str("bot", "cipher").Logger()
	cfg := &o.cfg.Bot

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return fmt.Errorf("connect bot api: %w", err)
	}
	api.Debug = o.cfg.IsDev() && o.cfg.LogLevel == "debug"
	log.Info().Str("username", api.Self.UserName).Msg("Bot API connected")

	client := NewClient(api, &log)
	router := bot.NewRouter(client, &log)

	menu := bot.RegisterAllHandlers(router, bot.Deps{
		Cfg:     o.cfg,
		Cipher:  o.cipher,
		History: o.history,
		Bot:     client,
	}, &log)

	if err := client.SetMenuCommands(ctx, menu); err != nil {
		log.Warn().Err(err).Msg("Could not set menu commands (continuing anyway)")
	}

	server := NewBotServer(api, router, cfg, &log)
	return server.Start(ctx)
}
