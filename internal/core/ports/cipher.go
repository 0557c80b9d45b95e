package ports

import (
	"CipherBot/internal/core/domain"
	"context"
)

// TopicCipherPerformed is published after every successful cipher call.
// The event data is a *domain.Operation.
const TopicCipherPerformed = "cipher:performed"

// CipherRequest is what a caller (bot handler, CLI) hands to the service.
type CipherRequest struct {
	ChatID  int64
	Kind    domain.CipherKind
	RawKey  string // Parsed according to Kind
	Message string
}

// CipherPort is the application entry point for running a cipher.
type CipherPort interface {
	// Encrypt runs the requested cipher forward and returns the recorded operation.
	Encrypt(ctx context.Context, req CipherRequest) (*domain.Operation, error)

	// Decrypt runs the requested cipher backward.
	Decrypt(ctx context.Context, req CipherRequest) (*domain.Operation, error)
}

// CipherMetrics records failed cipher calls. Successful calls are counted from the event bus.
type CipherMetrics interface {
	ObserveFailure(kind domain.CipherKind, dir domain.Direction, err error)
}
