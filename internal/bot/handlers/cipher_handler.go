package handlers

import (
	"CipherBot/internal/bot"
	"CipherBot/internal/bot/messages"
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"context"
	"errors"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewEncryptHandler)
	bot.RegisterCommand(NewDecryptHandler)
	bot.RegisterCommand(NewCaesarHandler)
	bot.RegisterCommand(NewVigenereHandler)
}

// cipherHandler serves /encrypt, /decrypt and the per-cipher shortcuts.
type cipherHandler struct {
	log         zerolog.Logger
	cipher      ports.CipherPort
	bot         ports.BotClientPort
	command     string
	description string
	usage       string
	direction   domain.Direction
	fixedKind   domain.CipherKind // empty: kind comes from the arguments
	defaultKind domain.CipherKind
}

func newCipherHandler(deps bot.Deps, baseLogger *zerolog.Logger, h cipherHandler) ports.CommandHandler {
	h.log = baseLogger.With().Str("component", h.command+"_handler").Logger()
	h.cipher = deps.Cipher
	h.bot = deps.Bot
	h.defaultKind = deps.Cfg.DefaultKind
	return &h
}

// NewEncryptHandler creates the /encrypt handler.
func NewEncryptHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return newCipherHandler(deps, baseLogger, cipherHandler{
		command:     "encrypt",
		description: "Encrypt text: [kind] <key> <text>",
		usage:       "/encrypt [caesar|vigenere] <key> <text>",
		direction:   domain.Forward,
	})
}

// NewDecryptHandler creates the /decrypt handler.
func NewDecryptHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return newCipherHandler(deps, baseLogger, cipherHandler{
		command:     "decrypt",
		description: "Decrypt text: [kind] <key> <text>",
		usage:       "/decrypt [caesar|vigenere] <key> <text>",
		direction:   domain.Backward,
	})
}

// NewCaesarHandler creates the /caesar shortcut.
func NewCaesarHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return newCipherHandler(deps, baseLogger, cipherHandler{
		command:     "caesar",
		description: "Caesar-encrypt: <offset> <text>",
		usage:       "/caesar <offset> <text>",
		direction:   domain.Forward,
		fixedKind:   domain.KindCaesar,
	})
}

// NewVigenereHandler creates the /vigenere shortcut.
func NewVigenereHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return newCipherHandler(deps, baseLogger, cipherHandler{
		command:     "vigenere",
		description: "Vigenère-encrypt: <key> <text>",
		usage:       "/vigenere <key> <text>",
		direction:   domain.Forward,
		fixedKind:   domain.KindVigenere,
	})
}

func (h *cipherHandler) Command() string     { return h.command }
func (h *cipherHandler) Description() string { return h.description }

// Handle parses the arguments, runs the cipher and replies with the result.
func (h *cipherHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	var (
		args cipherArgs
		err  error
	)
	if h.fixedKind != "" {
		args, err = parseKeyAndText(update.Arguments, h.fixedKind)
	} else {
		args, err = parseCipherArgs(update.Arguments, h.defaultKind)
	}
	if err != nil {
		return h.reply(ctx, update, messages.NewBuilder(update.ChatID).WithText(messages.ErrorText(err, h.usage)))
	}

	req := ports.CipherRequest{
		ChatID:  update.ChatID,
		Kind:    args.kind,
		RawKey:  args.key,
		Message: args.text,
	}

	var op *domain.Operation
	if h.direction == domain.Forward {
		op, err = h.cipher.Encrypt(ctx, req)
	} else {
		op, err = h.cipher.Decrypt(ctx, req)
	}
	if err != nil {
		text := messages.ErrorText(err, h.usage)
		replyErr := h.reply(ctx, update, messages.NewBuilder(update.ChatID).WithText(text))
		if text == messages.InternalError {
			h.log.Error().Err(err).Msg("Cipher service failed")
			return errors.Join(err, replyErr)
		}
		return replyErr
	}

	return h.reply(ctx, update, messages.NewBuilder(update.ChatID).WithMarkdown(messages.Result(op)))
}

func (h *cipherHandler) reply(ctx context.Context, update *ports.BotUpdate, b *messages.Builder) error {
	return h.bot.SendMessage(ctx, b.ReplyTo(update.MessageID).Build())
}
