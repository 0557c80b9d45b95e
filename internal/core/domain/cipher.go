package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidKeyType is returned when a key variant does not match the selected cipher.
	ErrInvalidKeyType = errors.New("key type does not match cipher kind")
	// ErrInvalidKey is returned for an empty Vigenère key or one with non-letters.
	ErrInvalidKey = errors.New("invalid key")
	// ErrUnknownKind is returned for a cipher name we do not implement.
	ErrUnknownKind = errors.New("unknown cipher kind")
)

// Direction selects encryption (Forward) or decryption (Backward).
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "decrypt"
	}
	return "encrypt"
}

// CipherKind is a custom type for our cipher ENUM
type CipherKind string

const (
	KindCaesar   CipherKind = "caesar"
	KindVigenere CipherKind = "vigenere"
)

// ParseKind maps user input onto a CipherKind.
func ParseKind(s string) (CipherKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "caesar":
		return KindCaesar, nil
	case "vigenere", "vigenère":
		return KindVigenere, nil
	default:
		return "", ErrUnknownKind
	}
}

// Key is the tagged key variant. Each implementation belongs to exactly one CipherKind.
type Key interface {
	Kind() CipherKind
	isKey()
}

// CaesarOffset is the key of the Caesar cipher.
type CaesarOffset int

func (CaesarOffset) Kind() CipherKind { return KindCaesar }
func (CaesarOffset) isKey()           {}

// VigenereKey is the key of the Vigenère cipher. It must be a non-empty run of letters.
type VigenereKey string

func (VigenereKey) Kind() CipherKind { return KindVigenere }
func (VigenereKey) isKey()           {}
