package messages

import (
	"CipherBot/internal/core/domain"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingArguments is returned by the argument parsers when a command is incomplete.
var ErrMissingArguments = errors.New("missing arguments")

// Usage is the /start and /help text.
func Usage(defaultKind domain.CipherKind) string {
	var b strings.Builder
	b.WriteString("I encrypt and decrypt text with the Caesar and Vigenère ciphers.\n\n")
	b.WriteString("/encrypt [kind] <key> <text>\n")
	b.WriteString("/decrypt [kind] <key> <text>\n")
	b.WriteString("/caesar <offset> <text>  (encrypt)\n")
	b.WriteString("/vigenere <key> <text>  (encrypt)\n")
	b.WriteString("/history  your last operations\n")
	b.WriteString("/forget  delete your history\n\n")
	b.WriteString("kind is caesar or vigenere")
	fmt.Fprintf(&b, " (default: %s).\n", KindTitle(defaultKind))
	b.WriteString("Caesar keys are whole numbers, Vigenère keys are words.\n\n")
	b.WriteString("Example: /encrypt vigenere lemon attack at dawn")
	return b.String()
}

// UnknownCommand answers a command nobody registered.
func UnknownCommand(cmd string) string {
	return fmt.Sprintf("I don't know /%s. Send /help to see what I can do.", cmd)
}

// KindTitle is the display name of a cipher.
func KindTitle(kind domain.CipherKind) string {
	switch kind {
	case domain.KindCaesar:
		return "Caesar"
	case domain.KindVigenere:
		return "Vigenère"
	default:
		return string(kind)
	}
}

// Result renders a finished operation as MarkdownV2.
func Result(op *domain.Operation) string {
	header := fmt.Sprintf("%s · %s", KindTitle(op.Kind), op.Direction)
	return fmt.Sprintf("*%s*\n\n%s", Escape(header), Escape(op.Output))
}

// History renders the newest-first operation list as plain text.
func History(ops []*domain.Operation) string {
	if len(ops) == 0 {
		return "No operations recorded yet."
	}

	var b strings.Builder
	b.WriteString("Your recent operations:\n")
	for _, op := range ops {
		fmt.Fprintf(&b, "\n%s  %s %s\n  %s → %s\n",
			op.CreatedAt.Format("2006-01-02 15:04"),
			KindTitle(op.Kind), op.Direction,
			truncate(op.Input, 40), truncate(op.Output, 40))
	}
	return b.String()
}

// Forgotten confirms a /forget.
func Forgotten(n int64) string {
	if n == 1 {
		return "Deleted 1 operation."
	}
	return fmt.Sprintf("Deleted %d operations.", n)
}

// HistoryDisabled is sent when the bot runs without a database.
const HistoryDisabled = "History is not enabled on this bot."

// InternalError is the catch-all reply.
const InternalError = "An internal error occurred. Please try again later."

// ErrorText turns a cipher error into a user-facing reply. usage is shown for incomplete commands.
func ErrorText(err error, usage string) string {
	switch {
	case errors.Is(err, ErrMissingArguments):
		return "Usage: " + usage
	case errors.Is(err, domain.ErrInvalidKeyType):
		return "That key doesn't fit the cipher: Caesar needs a whole number (e.g. 3), Vigenère needs a word (e.g. lemon)."
	case errors.Is(err, domain.ErrInvalidKey):
		return "The key is not usable: a Vigenère key must be one or more letters a-z, a Caesar offset must fit in an integer."
	case errors.Is(err, domain.ErrUnknownKind):
		return "Unknown cipher. Use caesar or vigenere."
	default:
		return InternalError
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
