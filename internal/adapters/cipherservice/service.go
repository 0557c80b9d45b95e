package cipherservice

import (
	"CipherBot/internal/core/cipher"
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ ports.CipherPort = (*cipherService)(nil) // Ensure compliance

// cipherService implements the CipherPort on top of the pure cipher package.
type cipherService struct {
	bus     ports.EventBus
	metrics ports.CipherMetrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewCipherService creates the service. metrics may be nil.
func NewCipherService(bus ports.EventBus, metrics ports.CipherMetrics, baseLogger *zerolog.Logger) ports.CipherPort {
	log := baseLogger.With().Str("component", "cipher_service").Logger()
	log.Info().Msg("Cipher service initialized")

	return &cipherService{
		bus:     bus,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// Encrypt runs the requested cipher forward.
func (s *cipherService) Encrypt(ctx context.Context, req ports.CipherRequest) (*domain.Operation, error) {
	return s.run(ctx, req, domain.Forward)
}

// Decrypt runs the requested cipher backward.
func (s *cipherService) Decrypt(ctx context.Context, req ports.CipherRequest) (*domain.Operation, error) {
	return s.run(ctx, req, domain.Backward)
}

func (s *cipherService) run(ctx context.Context, req ports.CipherRequest, dir domain.Direction) (*domain.Operation, error) {
	log := s.log.With().
		Int64("chat_id", req.ChatID).
		Str("kind", string(req.Kind)).
		Str("direction", dir.String()).
		Logger()

	key, err := cipher.ParseKey(req.Kind, req.RawKey)
	if err != nil {
		log.Info().Err(err).Msg("Rejected cipher key")
		s.observeFailure(req.Kind, dir, err)
		return nil, err
	}

	var output string
	if dir == domain.Forward {
		output, err = cipher.Encrypt(req.Message, key, req.Kind)
	} else {
		output, err = cipher.Decrypt(req.Message, key, req.Kind)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Cipher call failed")
		s.observeFailure(req.Kind, dir, err)
		return nil, err
	}

	op := &domain.Operation{
		ID:        uuid.New(),
		ChatID:    req.ChatID,
		Kind:      req.Kind,
		Direction: dir,
		Input:     req.Message,
		Output:    output,
		CreatedAt: s.now().UTC(),
	}

	log.Debug().Str("operation_id", op.ID.String()).Int("runes", len([]rune(req.Message))).Msg("Cipher call completed")

	if s.bus != nil {
		if err := s.bus.Publish(ctx, ports.TopicCipherPerformed, op); err != nil {
			// The caller still gets its result; only the side effects are lost.
			log.Error().Err(err).Msg("Failed to publish cipher event")
		}
	}

	return op, nil
}

func (s *cipherService) observeFailure(kind domain.CipherKind, dir domain.Direction, err error) {
	if s.metrics != nil {
		s.metrics.ObserveFailure(kind, dir, err)
	}
}
