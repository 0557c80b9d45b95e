package cipher

import (
	"strings"

	"CipherBot/internal/core/domain"
)

// Caesar shifts every letter of message by the same offset.
// Decryption is the same call with domain.Backward.
func Caesar(message string, offset int, dir domain.Direction) string {
	return strings.Map(func(r rune) rune {
		return ShiftCharacter(r, offset, dir)
	}, message)
}
