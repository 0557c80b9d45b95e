package ports

import (
	"CipherBot/internal/core/domain"
	"context"
)

// OperationRepository defines the persistence operations for cipher history.
type OperationRepository interface {
	// Create saves a new operation. Input and Output are encrypted before storage.
	Create(ctx context.Context, op *domain.Operation) error

	// ListByChatID returns the newest operations for a chat, newest first.
	ListByChatID(ctx context.Context, chatID int64, limit int) ([]*domain.Operation, error)

	// DeleteByChatID removes the chat's history and reports how many rows went away.
	DeleteByChatID(ctx context.Context, chatID int64) (int64, error)
}

// HistoryPort is the read side of the history used by the bot.
type HistoryPort interface {
	Enabled() bool
	Recent(ctx context.Context, chatID int64, limit int) ([]*domain.Operation, error)
	Forget(ctx context.Context, chatID int64) (int64, error)
}
