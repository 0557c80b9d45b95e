package handlers

import (
	"CipherBot/internal/bot"
	"CipherBot/internal/bot/messages"
	"CipherBot/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

const historyLimit = 10

func init() {
	bot.RegisterCommand(NewHistoryHandler)
	bot.RegisterCommand(NewForgetHandler)
}

// historyHandler is the plugin for the /history command.
type historyHandler struct {
	log     zerolog.Logger
	history ports.HistoryPort
	bot     ports.BotClientPort
}

// NewHistoryHandler creates a new handler for the /history command.
func NewHistoryHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &historyHandler{
		log:     baseLogger.With().Str("component", "history_handler").Logger(),
		history: deps.History,
		bot:     deps.Bot,
	}
}

func (h *historyHandler) Command() string     { return "history" }
func (h *historyHandler) Description() string { return "Show your last operations" }

func (h *historyHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	builder := messages.NewBuilder(update.ChatID)

	if h.history == nil || !h.history.Enabled() {
		return h.bot.SendMessage(ctx, builder.WithText(messages.HistoryDisabled).Build())
	}

	ops, err := h.history.Recent(ctx, update.ChatID, historyLimit)
	if err != nil {
		h.log.Error().Err(err).Int64("chat_id", update.ChatID).Msg("Failed to load history")
		if sendErr := h.bot.SendMessage(ctx, builder.WithText(messages.InternalError).Build()); sendErr != nil {
			h.log.Error().Err(sendErr).Msg("Failed to send error reply")
		}
		return err
	}

	return h.bot.SendMessage(ctx, builder.WithText(messages.History(ops)).Build())
}

// forgetHandler is the plugin for the /forget command.
type forgetHandler struct {
	log     zerolog.Logger
	history ports.HistoryPort
	bot     ports.BotClientPort
}

// NewForgetHandler creates a new handler for the /forget command.
func NewForgetHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &forgetHandler{
		log:     baseLogger.With().Str("component", "forget_handler").Logger(),
		history: deps.History,
		bot:     deps.Bot,
	}
}

func (h *forgetHandler) Command() string     { return "forget" }
func (h *forgetHandler) Description() string { return "Delete your history" }

func (h *forgetHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	builder := messages.NewBuilder(update.ChatID)

	if h.history == nil || !h.history.Enabled() {
		return h.bot.SendMessage(ctx, builder.WithText(messages.HistoryDisabled).Build())
	}

	n, err := h.history.Forget(ctx, update.ChatID)
	if err != nil {
		h.log.Error().Err(err).Int64("chat_id", update.ChatID).Msg("Failed to delete history")
		if sendErr := h.bot.SendMessage(ctx, builder.WithText(messages.InternalError).Build()); sendErr != nil {
			h.log.Error().Err(sendErr).Msg("Failed to send error reply")
		}
		return err
	}

	h.log.Info().Int64("chat_id", update.ChatID).Int64("deleted", n).Msg("History deleted")
	return h.bot.SendMessage(ctx, builder.WithText(messages.Forgotten(n)).Build())
}
