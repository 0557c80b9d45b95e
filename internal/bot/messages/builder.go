package messages

import (
	"CipherBot/internal/core/ports"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder helps construct SendMessageParams.
type Builder struct {
	params ports.SendMessageParams
}

// NewBuilder creates a new message builder. Messages are plain text unless WithMarkdown is used.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{ChatID: chatID},
	}
}

// WithText sets the message text verbatim.
func (b *Builder) WithText(text string) *Builder {
	b.params.Text = text
	return b
}

// WithMarkdown sets MarkdownV2 text. The caller is responsible for escaping; see Escape.
func (b *Builder) WithMarkdown(text string) *Builder {
	b.params.Text = text
	b.params.ParseMode = tgbotapi.ModeMarkdownV2
	return b
}

// ReplyTo quotes the message the bot is answering.
func (b *Builder) ReplyTo(messageID int) *Builder {
	b.params.ReplyToMessageID = messageID
	return b
}

// Build returns the final SendMessageParams struct.
func (b *Builder) Build() ports.SendMessageParams {
	return b.params
}

// Escape makes arbitrary user text safe to embed in a MarkdownV2 message.
// EscapeText leaves backslashes alone, so those are doubled first.
func Escape(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, strings.ReplaceAll(text, `\`, `\\`))
}
