package postgres

import (
	"CipherBot/internal/adapters/security"
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var _ ports.OperationRepository = (*operationRepository)(nil) // Ensure compliance

type operationRepository struct {
	db     *DB
	secSvc ports.SecurityPort
	log    zerolog.Logger
}

// NewOperationRepository creates a new repository for cipher history.
func NewOperationRepository(db *DB, secSvc ports.SecurityPort, baseLogger *zerolog.Logger) ports.OperationRepository {
	return &operationRepository{
		db:     db,
		secSvc: secSvc,
		log:    baseLogger.With().Str("component", "operation_repo").Logger(),
	}
}

// Create encrypts the message text and saves the operation.
func (r *operationRepository) Create(ctx context.Context, op *domain.Operation) error {
	encInput, err := security.SealString(r.secSvc, op.Input)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt operation input")
		return err
	}
	encOutput, err := security.SealString(r.secSvc, op.Output)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt operation output")
		return err
	}

	query := `
		INSERT INTO cipher_operations (
			id, chat_id, kind, direction, input, output, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.pool.Exec(ctx, query,
		op.ID,
		op.ChatID,
		string(op.Kind),
		int16(op.Direction),
		encInput,
		encOutput,
		op.CreatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("operation_id", op.ID.String()).Msg("Failed to insert operation")
	}
	return err
}

// scanOperation is a helper to scan a row and decrypt data.
func (r *operationRepository) scanOperation(row pgx.Row) (*domain.Operation, error) {
	var op domain.Operation
	var kind string
	var direction int16
	var encInput, encOutput string

	if err := row.Scan(&op.ID, &op.ChatID, &kind, &direction, &encInput, &encOutput, &op.CreatedAt); err != nil {
		return nil, err
	}
	op.Kind = domain.CipherKind(kind)
	op.Direction = domain.Direction(direction)

	var err error
	if op.Input, err = security.OpenString(r.secSvc, encInput); err != nil {
		return nil, fmt.Errorf("operation %s input: %w", op.ID, err)
	}
	if op.Output, err = security.OpenString(r.secSvc, encOutput); err != nil {
		return nil, fmt.Errorf("operation %s output: %w", op.ID, err)
	}

	return &op, nil
}

// ListByChatID returns the newest operations for a chat.
func (r *operationRepository) ListByChatID(ctx context.Context, chatID int64, limit int) ([]*domain.Operation, error) {
	query := `
		SELECT id, chat_id, kind, direction, input, output, created_at
		FROM cipher_operations
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.pool.Query(ctx, query, chatID, limit)
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to query operations")
		return nil, err
	}
	defer rows.Close()

	var ops []*domain.Operation
	for rows.Next() {
		op, err := r.scanOperation(rows)
		if err != nil {
			r.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed during row scan for operations")
			return nil, err
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("Error iterating operation rows")
		return nil, err
	}

	return ops, nil
}

// DeleteByChatID removes every stored operation of a chat.
func (r *operationRepository) DeleteByChatID(ctx context.Context, chatID int64) (int64, error) {
	tag, err := r.db.pool.Exec(ctx, "DELETE FROM cipher_operations WHERE chat_id = $1", chatID)
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to delete operations")
		return 0, err
	}
	return tag.RowsAffected(), nil
}
