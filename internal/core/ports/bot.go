package ports

import (
	"context"
)

// --- Bot Message Structures ---

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID           int64
	Text             string
	ParseMode        string // e.g., "MarkdownV2" or "" for plain text
	ReplyToMessageID int
}

// BotCommand is one entry of the bot's menu.
type BotCommand struct {
	Command     string
	Description string
}

// --- Bot Client Port (Outbound) ---

// BotClientPort defines the interface for *sending* messages.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
	SetMenuCommands(ctx context.Context, commands []BotCommand) error
}

// --- Bot Handler Port (Inbound) ---

// BotUpdate represents a simplified, generic update.
type BotUpdate struct {
	MessageID int
	ChatID    int64
	UserID    int64
	Text      string
	Command   string
	Arguments string // Text after the command
}

// CommandHandler defines the "plugin" interface for handling bot commands.
type CommandHandler interface {
	// Command returns the command string without the slash (e.g., "encrypt")
	Command() string
	// Description is shown in the bot menu and in /help.
	Description() string
	// Handle processes the update.
	Handle(ctx context.Context, update *BotUpdate) error
}

// TextHandler handles any message that is not a known command.
type TextHandler interface {
	Handle(ctx context.Context, update *BotUpdate) error
}
