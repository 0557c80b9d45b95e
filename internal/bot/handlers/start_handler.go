package handlers

import (
	"CipherBot/internal/bot"
	"CipherBot/internal/bot/messages"
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewStartHandler)
	bot.RegisterCommand(NewHelpHandler)
	bot.RegisterText(NewTextHandler)
}

// usageHandler answers /start, /help and plain text with the usage text.
type usageHandler struct {
	log         zerolog.Logger
	bot         ports.BotClientPort
	command     string
	description string
	defaultKind domain.CipherKind
}

func newUsageHandler(deps bot.Deps, baseLogger *zerolog.Logger, command, description string) *usageHandler {
	return &usageHandler{
		log:         baseLogger.With().Str("component", "usage_handler").Logger(),
		bot:         deps.Bot,
		command:     command,
		description: description,
		defaultKind: deps.Cfg.DefaultKind,
	}
}

// NewStartHandler creates a new handler for the /start command.
func NewStartHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return newUsageHandler(deps, baseLogger, "start", "Start the bot")
}

// NewHelpHandler creates a new handler for the /help command.
func NewHelpHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return newUsageHandler(deps, baseLogger, "help", "How to use the bot")
}

// NewTextHandler answers messages that are not commands.
func NewTextHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.TextHandler {
	return newUsageHandler(deps, baseLogger, "", "")
}

func (h *usageHandler) Command() string     { return h.command }
func (h *usageHandler) Description() string { return h.description }

func (h *usageHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	msg := messages.NewBuilder(update.ChatID).WithText(messages.Usage(h.defaultKind)).Build()
	return h.bot.SendMessage(ctx, msg)
}
