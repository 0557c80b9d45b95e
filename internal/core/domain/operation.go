package domain

import (
	"time"

	"github.com/google/uuid"
)

// Operation is a single encrypt or decrypt call made through the service.
type Operation struct {
	ID        uuid.UUID
	ChatID    int64
	Kind      CipherKind
	Direction Direction
	Input     string // Encrypted at rest
	Output    string // Encrypted at rest
	CreatedAt time.Time
}
