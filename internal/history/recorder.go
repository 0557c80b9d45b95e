// Package history persists completed cipher operations and reads them back for the bot.
package history

import (
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrDisabled is returned by the bot-facing methods when no repository is configured.
var ErrDisabled = errors.New("history is disabled")

// Recorder listens for cipher events and writes them to the repository.
// A Recorder with a nil repository is valid and reports ErrDisabled.
type Recorder struct {
	repo ports.OperationRepository
	log  zerolog.Logger
}

// NewRecorder creates a history recorder. repo may be nil.
func NewRecorder(repo ports.OperationRepository, baseLogger *zerolog.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		log:  baseLogger.With().Str("component", "history_recorder").Logger(),
	}
}

// Enabled reports whether operations are being stored.
func (r *Recorder) Enabled() bool {
	return r.repo != nil
}

// Attach subscribes the recorder to the cipher topic.
func (r *Recorder) Attach(bus ports.EventBus) {
	if !r.Enabled() {
		r.log.Info().Msg("History disabled, not subscribing")
		return
	}
	bus.Subscribe(ports.TopicCipherPerformed, r.HandleCipherPerformed)
}

// HandleCipherPerformed is an EventHandler for the "cipher:performed" topic.
func (r *Recorder) HandleCipherPerformed(ctx context.Context, event ports.Event) error {
	op, ok := event.Data.(*domain.Operation)
	if !ok {
		r.log.Error().Msg("Received invalid data for 'cipher:performed' event")
		return nil // Don't retry
	}

	if err := r.repo.Create(ctx, op); err != nil {
		r.log.Error().Err(err).Str("operation_id", op.ID.String()).Msg("Failed to record operation")
		return err
	}
	return nil
}

// Recent returns the newest operations of a chat.
func (r *Recorder) Recent(ctx context.Context, chatID int64, limit int) ([]*domain.Operation, error) {
	if !r.Enabled() {
		return nil, ErrDisabled
	}
	return r.repo.ListByChatID(ctx, chatID, limit)
}

// Forget deletes the chat's history.
func (r *Recorder) Forget(ctx context.Context, chatID int64) (int64, error) {
	if !r.Enabled() {
		return 0, ErrDisabled
	}
	return r.repo.DeleteByChatID(ctx, chatID)
}
