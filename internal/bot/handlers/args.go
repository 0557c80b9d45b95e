package handlers

import (
	"CipherBot/internal/bot/messages"
	"CipherBot/internal/core/domain"
	"strings"
	"unicode"
)

// nextField splits off the first whitespace-separated word. The rest keeps its inner spacing.
func nextField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeftFunc(s[idx:], unicode.IsSpace)
}

// cipherArgs is a parsed "[kind] <key> <text>" argument string.
type cipherArgs struct {
	kind domain.CipherKind
	key  string
	text string
}

// parseCipherArgs reads "[kind] <key> <text>". When the first word is not a cipher name,
// defaultKind is used and the word is taken as the key.
func parseCipherArgs(args string, defaultKind domain.CipherKind) (cipherArgs, error) {
	first, rest := nextField(args)
	if kind, err := domain.ParseKind(first); err == nil {
		return parseKeyAndText(rest, kind)
	}
	return parseKeyAndText(args, defaultKind)
}

// parseKeyAndText reads "<key> <text>" for a fixed kind.
func parseKeyAndText(args string, kind domain.CipherKind) (cipherArgs, error) {
	key, text := nextField(args)
	if key == "" || strings.TrimSpace(text) == "" {
		return cipherArgs{}, messages.ErrMissingArguments
	}
	return cipherArgs{kind: kind, key: key, text: text}, nil
}
