package cipher

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"CipherBot/internal/core/domain"
)

// Encrypt runs the cipher selected by kind forward over message.
func Encrypt(message string, key domain.Key, kind domain.CipherKind) (string, error) {
	return apply(message, key, kind, domain.Forward)
}

// Decrypt runs the cipher selected by kind backward over message.
func Decrypt(message string, key domain.Key, kind domain.CipherKind) (string, error) {
	return apply(message, key, kind, domain.Backward)
}

func apply(message string, key domain.Key, kind domain.CipherKind, dir domain.Direction) (string, error) {
	if kind != domain.KindCaesar && kind != domain.KindVigenere {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if key == nil || key.Kind() != kind {
		return "", fmt.Errorf("%w: %s cipher needs a %s key", domain.ErrInvalidKeyType, kind, keyDescription(kind))
	}

	switch k := key.(type) {
	case domain.CaesarOffset:
		return Caesar(message, int(k), dir), nil
	case domain.VigenereKey:
		return Vigenere(message, string(k), dir)
	default:
		return "", fmt.Errorf("%w: %T", domain.ErrInvalidKeyType, key)
	}
}

// ParseKey turns raw user input into the key variant required by kind.
func ParseKey(kind domain.CipherKind, raw string) (domain.Key, error) {
	raw = strings.TrimSpace(raw)

	switch kind {
	case domain.KindCaesar:
		offset, err := strconv.Atoi(raw)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
				return nil, fmt.Errorf("%w: offset %q is out of range", domain.ErrInvalidKey, raw)
			}
			return nil, fmt.Errorf("%w: caesar cipher needs an integer key, got %q", domain.ErrInvalidKeyType, raw)
		}
		return domain.CaesarOffset(offset), nil

	case domain.KindVigenere:
		if _, err := strconv.Atoi(raw); err == nil {
			return nil, fmt.Errorf("%w: vigenere cipher needs a letter key, got %q", domain.ErrInvalidKeyType, raw)
		}
		if err := ValidateVigenereKey(raw); err != nil {
			return nil, err
		}
		return domain.VigenereKey(raw), nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
}

func keyDescription(kind domain.CipherKind) string {
	if kind == domain.KindCaesar {
		return "integer"
	}
	return "letter"
}
