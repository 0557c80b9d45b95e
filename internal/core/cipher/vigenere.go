package cipher

import (
	"fmt"
	"strings"

	"CipherBot/internal/core/domain"
)

// ValidateVigenereKey checks that key is a non-empty run of Latin letters.
func ValidateVigenereKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", domain.ErrInvalidKey)
	}
	for _, r := range key {
		if !isLetter(r) {
			return fmt.Errorf("%w: %q is not a letter", domain.ErrInvalidKey, r)
		}
	}
	return nil
}

// Vigenere shifts each letter of message by the alphabet index of the next key letter.
// The key cursor only advances on letters, so spaces and punctuation don't consume key.
func Vigenere(message, key string, dir domain.Direction) (string, error) {
	if err := ValidateVigenereKey(key); err != nil {
		return "", err
	}

	offsets := make([]int, 0, len(key))
	for _, r := range strings.ToLower(key) {
		offsets = append(offsets, int(r-'a'))
	}

	var b strings.Builder
	b.Grow(len(message))

	cursor := 0
	for _, r := range message {
		if !isLetter(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(ShiftCharacter(r, offsets[cursor%len(offsets)], dir))
		cursor++
	}

	return b.String(), nil
}
