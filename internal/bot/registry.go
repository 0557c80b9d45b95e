package bot

import (
	"CipherBot/internal/core/ports"
	"CipherBot/internal/shared/config"

	"github.com/rs/zerolog"
)

// Deps carries everything a handler constructor may need.
type Deps struct {
	Cfg     *config.Config
	Cipher  ports.CipherPort
	History ports.HistoryPort
	Bot     ports.BotClientPort
}

// --- Define types for handler "constructors" ---

type CommandHandlerConstructor func(deps Deps, baseLogger *zerolog.Logger) ports.CommandHandler
type TextHandlerConstructor func(deps Deps, baseLogger *zerolog.Logger) ports.TextHandler

// --- Create the global registries ---

var (
	commandRegistry []CommandHandlerConstructor
	textHandler     TextHandlerConstructor
)

// RegisterCommand is called by handlers in their init() function
func RegisterCommand(constructor CommandHandlerConstructor) {
	commandRegistry = append(commandRegistry, constructor)
}

// RegisterText is called by the text handler in its init() function
func RegisterText(constructor TextHandlerConstructor) {
	// We only allow one global text handler
	textHandler = constructor
}

// RegisterAllHandlers builds every registered handler and hands it to the router.
// It returns the menu entries in registration order.
func RegisterAllHandlers(router *Router, deps Deps, baseLogger *zerolog.Logger) []ports.BotCommand {
	log := baseLogger.With().Str("component", "handler_registry").Logger()

	var menu []ports.BotCommand
	for _, constructor := range commandRegistry {
		handler := constructor(deps, baseLogger)
		router.RegisterCommandHandler(handler)
		menu = append(menu, ports.BotCommand{Command: handler.Command(), Description: handler.Description()})
	}

	if textHandler != nil {
		router.SetTextHandler(textHandler(deps, baseLogger))
		log.Info().Msg("Registered main text handler")
	}

	log.Info().Int("commands", len(menu)).Msg("All handlers registered")
	return menu
}
