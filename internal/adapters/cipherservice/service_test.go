package cipherservice

import (
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockEventBus struct {
	mock.Mock
}

var _ ports.EventBus = (*MockEventBus)(nil)

func (m *MockEventBus) Publish(ctx context.Context, topic string, data any) error {
	args := m.Called(ctx, topic, data)
	return args.Error(0)
}
func (m *MockEventBus) Subscribe(topic string, handler ports.EventHandler) {
	m.Called(topic, handler)
}
func (m *MockEventBus) Wait() {}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ObserveFailure(kind domain.CipherKind, dir domain.Direction, err error) {
	m.Called(kind, dir, err)
}

// --- Tests ---

func TestCipherService_EncryptDecrypt_Roundtrip(t *testing.T) {
	nopLogger := zerolog.Nop()
	ctx := context.Background()

	testCases := []struct {
		name   string
		kind   domain.CipherKind
		key    string
		plain  string
		cipher string
	}{
		{"caesar", domain.KindCaesar, "3", "Hello, World!", "Khoor, Zruog!"},
		{"vigenere", domain.KindVigenere, "lemon", "attackatdawn", "lxfopvefrnhr"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bus := new(MockEventBus)
			bus.On("Publish", mock.Anything, ports.TopicCipherPerformed, mock.AnythingOfType("*domain.Operation")).Return(nil).Twice()
			svc := NewCipherService(bus, nil, &nopLogger)

			enc, err := svc.Encrypt(ctx, ports.CipherRequest{ChatID: 7, Kind: tc.kind, RawKey: tc.key, Message: tc.plain})
			require.NoError(t, err)
			assert.Equal(t, tc.cipher, enc.Output)
			assert.Equal(t, tc.plain, enc.Input)
			assert.Equal(t, domain.Forward, enc.Direction)
			assert.Equal(t, int64(7), enc.ChatID)
			assert.NotEmpty(t, enc.ID)

			dec, err := svc.Decrypt(ctx, ports.CipherRequest{ChatID: 7, Kind: tc.kind, RawKey: tc.key, Message: enc.Output})
			require.NoError(t, err)
			assert.Equal(t, tc.plain, dec.Output)
			assert.Equal(t, domain.Backward, dec.Direction)
			assert.NotEqual(t, enc.ID, dec.ID)

			bus.AssertExpectations(t)
		})
	}
}

func TestCipherService_InvalidKeyType(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := new(MockEventBus)
	metrics := new(MockMetrics)
	metrics.On("ObserveFailure", domain.KindCaesar, domain.Forward, mock.Anything).Return().Once()

	svc := NewCipherService(bus, metrics, &nopLogger)

	op, err := svc.Encrypt(context.Background(), ports.CipherRequest{Kind: domain.KindCaesar, RawKey: "key", Message: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidKeyType)
	assert.Nil(t, op)

	metrics.AssertExpectations(t)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCipherService_EmptyVigenereKey(t *testing.T) {
	nopLogger := zerolog.Nop()
	metrics := new(MockMetrics)
	metrics.On("ObserveFailure", domain.KindVigenere, domain.Backward, mock.Anything).Return().Once()

	svc := NewCipherService(nil, metrics, &nopLogger)

	_, err := svc.Decrypt(context.Background(), ports.CipherRequest{Kind: domain.KindVigenere, RawKey: "", Message: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
	metrics.AssertExpectations(t)
}
