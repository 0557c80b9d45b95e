package bot

import (
	"CipherBot/internal/bot/messages"
	"CipherBot/internal/core/ports"
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Router is the "Bot Facade." It holds all "plugins"
// and routes incoming updates to the correct handler.
type Router struct {
	log             zerolog.Logger
	botClient       ports.BotClientPort
	commandHandlers map[string]ports.CommandHandler
	textHandler     ports.TextHandler
}

// NewRouter creates a new bot facade/router.
func NewRouter(botClient ports.BotClientPort, baseLogger *zerolog.Logger) *Router {
	return &Router{
		log:             baseLogger.With().Str("component", "bot_router").Logger(),
		botClient:       botClient,
		commandHandlers: make(map[string]ports.CommandHandler),
	}
}

// RegisterCommandHandler adds a "plugin" to the router.
func (r *Router) RegisterCommandHandler(handler ports.CommandHandler) {
	cmd := handler.Command()
	r.commandHandlers[cmd] = handler
	r.log.Info().Str("command", cmd).Msg("Registered new command handler")
}

// SetTextHandler registers the single, global text handler
func (r *Router) SetTextHandler(handler ports.TextHandler) {
	r.textHandler = handler
}

// HandleUpdate is the main entry point for a new update from Telegram.
func (r *Router) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	botUpdate, isSupported := r.parseUpdate(update)
	if !isSupported {
		r.log.Debug().Int("update_id", update.UpdateID).Msg("Ignoring unsupported update type")
		return
	}

	ctxLogger := r.log.With().
		Int64("user_id", botUpdate.UserID).
		Int64("chat_id", botUpdate.ChatID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	if botUpdate.Command != "" {
		handler, ok := r.commandHandlers[strings.ToLower(botUpdate.Command)]
		if !ok {
			ctxLogger.Info().Str("command", botUpdate.Command).Msg("Unknown command")
			msg := messages.NewBuilder(botUpdate.ChatID).
				WithText(messages.UnknownCommand(botUpdate.Command)).
				ReplyTo(botUpdate.MessageID).
				Build()
			if err := r.botClient.SendMessage(ctx, msg); err != nil {
				ctxLogger.Error().Err(err).Msg("Failed to answer unknown command")
			}
			return
		}

		ctxLogger.Info().Str("handler", handler.Command()).Msg("Routing to command handler")
		if err := handler.Handle(ctx, botUpdate); err != nil {
			ctxLogger.Error().Err(err).Msg("Command handler failed")
		}
		return
	}

	if r.textHandler != nil {
		ctxLogger.Debug().Msg("Routing to text handler")
		if err := r.textHandler.Handle(ctx, botUpdate); err != nil {
			ctxLogger.Error().Err(err).Msg("Text handler failed")
		}
		return
	}

	ctxLogger.Info().Msg("Received unhandled text message (no handler)")
}

// parseUpdate converts a tgbotapi.Update into our internal, simplified struct.
// Only plain messages with a sender are supported.
func (r *Router) parseUpdate(update *tgbotapi.Update) (*ports.BotUpdate, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil {
		return nil, false
	}

	return &ports.BotUpdate{
		MessageID: msg.MessageID,
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		Text:      msg.Text,
		Command:   msg.Command(),
		Arguments: msg.CommandArguments(),
	}, true
}
