package handlers

import (
	"CipherBot/internal/adapters/cipherservice"
	"CipherBot/internal/bot"
	"CipherBot/internal/bot/messages"
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"CipherBot/internal/shared/config"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockBotClient is a mock for the BotClientPort
type MockBotClient struct {
	mock.Mock
}

var _ ports.BotClientPort = (*MockBotClient)(nil)

func (m *MockBotClient) SendMessage(ctx context.Context, params ports.SendMessageParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
func (m *MockBotClient) SetMenuCommands(ctx context.Context, commands []ports.BotCommand) error {
	args := m.Called(ctx, commands)
	return args.Error(0)
}

// MockCipher is a mock for the CipherPort
type MockCipher struct {
	mock.Mock
}

func (m *MockCipher) Encrypt(ctx context.Context, req ports.CipherRequest) (*domain.Operation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}
func (m *MockCipher) Decrypt(ctx context.Context, req ports.CipherRequest) (*domain.Operation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}

// MockHistory is a mock for the HistoryPort
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Enabled() bool {
	return m.Called().Bool(0)
}
func (m *MockHistory) Recent(ctx context.Context, chatID int64, limit int) ([]*domain.Operation, error) {
	args := m.Called(ctx, chatID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Operation), args.Error(1)
}
func (m *MockHistory) Forget(ctx context.Context, chatID int64) (int64, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Helpers ---

func testDeps(client ports.BotClientPort, cipher ports.CipherPort, history ports.HistoryPort) bot.Deps {
	return bot.Deps{
		Cfg:     &config.Config{DefaultKind: domain.KindCaesar},
		Cipher:  cipher,
		History: history,
		Bot:     client,
	}
}

func realCipher() ports.CipherPort {
	nopLogger := zerolog.Nop()
	return cipherservice.NewCipherService(nil, nil, &nopLogger)
}

// expectReply captures the single message the handler sends.
func expectReply(client *MockBotClient) *ports.SendMessageParams {
	var sent ports.SendMessageParams
	client.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(nil).Once()
	return &sent
}

// --- Tests ---

func TestCipherHandlers(t *testing.T) {
	testCases := []struct {
		name      string
		construct bot.CommandHandlerConstructor
		args      string
		wantText  string
		wantMode  string
	}{
		{"encrypt caesar", NewEncryptHandler, "caesar 3 Hello, World!", "*Caesar · encrypt*\n\nKhoor, Zruog\\!", "MarkdownV2"},
		{"decrypt caesar", NewDecryptHandler, "caesar 3 Khoor, Zruog!", "*Caesar · decrypt*\n\nHello, World\\!", "MarkdownV2"},
		{"encrypt default kind", NewEncryptHandler, "1 abc", "*Caesar · encrypt*\n\nbcd", "MarkdownV2"},
		{"encrypt vigenere", NewEncryptHandler, "vigenere lemon attackatdawn", "*Vigenère · encrypt*\n\nlxfopvefrnhr", "MarkdownV2"},
		{"decrypt vigenere", NewDecryptHandler, "vigenère LEMON lxfopvefrnhr", "*Vigenère · decrypt*\n\nattackatdawn", "MarkdownV2"},
		{"caesar shortcut", NewCaesarHandler, "-1 b", "*Caesar · encrypt*\n\na", "MarkdownV2"},
		{"vigenere shortcut", NewVigenereHandler, "lemon attack at dawn", "*Vigenère · encrypt*\n\nlxfopv ef rnhr", "MarkdownV2"},
		{"wrong key type", NewEncryptHandler, "caesar key abc", messages.ErrorText(domain.ErrInvalidKeyType, ""), ""},
		{"numeric vigenere key", NewVigenereHandler, "3 abc", messages.ErrorText(domain.ErrInvalidKeyType, ""), ""},
		{"bad vigenere key", NewEncryptHandler, "vigenere k3y abc", messages.ErrorText(domain.ErrInvalidKey, ""), ""},
		{"missing arguments", NewCaesarHandler, "3", "Usage: /caesar <offset> <text>", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nopLogger := zerolog.Nop()
			client := new(MockBotClient)
			sent := expectReply(client)

			handler := tc.construct(testDeps(client, realCipher(), nil), &nopLogger)
			err := handler.Handle(context.Background(), &ports.BotUpdate{ChatID: 10, MessageID: 77, Arguments: tc.args})

			require.NoError(t, err)
			client.AssertExpectations(t)
			assert.Equal(t, tc.wantText, sent.Text)
			assert.Equal(t, tc.wantMode, sent.ParseMode)
			assert.Equal(t, int64(10), sent.ChatID)
			assert.Equal(t, 77, sent.ReplyToMessageID)
		})
	}
}

func TestCipherHandler_PassesRequestToService(t *testing.T) {
	nopLogger := zerolog.Nop()
	client := new(MockBotClient)
	expectReply(client)
	cipher := new(MockCipher)

	want := ports.CipherRequest{ChatID: 3, Kind: domain.KindVigenere, RawKey: "lemon", Message: "attack  at dawn"}
	cipher.On("Decrypt", mock.Anything, want).
		Return(&domain.Operation{Kind: domain.KindVigenere, Direction: domain.Backward, Output: "x"}, nil).Once()

	handler := NewDecryptHandler(testDeps(client, cipher, nil), &nopLogger)
	require.NoError(t, handler.Handle(context.Background(), &ports.BotUpdate{ChatID: 3, Arguments: "vigenere lemon attack  at dawn"}))

	cipher.AssertExpectations(t)
	cipher.AssertNotCalled(t, "Encrypt", mock.Anything, mock.Anything)
}

func TestCipherHandler_InternalError(t *testing.T) {
	nopLogger := zerolog.Nop()
	client := new(MockBotClient)
	sent := expectReply(client)
	cipher := new(MockCipher)
	cipher.On("Encrypt", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	handler := NewEncryptHandler(testDeps(client, cipher, nil), &nopLogger)
	err := handler.Handle(context.Background(), &ports.BotUpdate{ChatID: 1, Arguments: "caesar 3 abc"})

	assert.Error(t, err)
	assert.Equal(t, messages.InternalError, sent.Text)
}

func TestUsageHandlers(t *testing.T) {
	nopLogger := zerolog.Nop()

	constructors := map[string]func(bot.Deps, *zerolog.Logger) ports.TextHandler{
		"start": func(d bot.Deps, l *zerolog.Logger) ports.TextHandler { return NewStartHandler(d, l) },
		"help":  func(d bot.Deps, l *zerolog.Logger) ports.TextHandler { return NewHelpHandler(d, l) },
		"text":  NewTextHandler,
	}

	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			client := new(MockBotClient)
			sent := expectReply(client)

			handler := construct(testDeps(client, nil, nil), &nopLogger)
			require.NoError(t, handler.Handle(context.Background(), &ports.BotUpdate{ChatID: 2}))
			assert.Equal(t, messages.Usage(domain.KindCaesar), sent.Text)
			assert.Empty(t, sent.ParseMode)
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	nopLogger := zerolog.Nop()

	t.Run("disabled", func(t *testing.T) {
		client := new(MockBotClient)
		sent := expectReply(client)
		history := new(MockHistory)
		history.On("Enabled").Return(false)

		require.NoError(t, NewHistoryHandler(testDeps(client, nil, history), &nopLogger).
			Handle(context.Background(), &ports.BotUpdate{ChatID: 4}))
		assert.Equal(t, messages.HistoryDisabled, sent.Text)
	})

	t.Run("lists operations", func(t *testing.T) {
		client := new(MockBotClient)
		sent := expectReply(client)
		history := new(MockHistory)
		ops := []*domain.Operation{{Kind: domain.KindCaesar, Direction: domain.Forward, Input: "abc", Output: "def"}}
		history.On("Enabled").Return(true)
		history.On("Recent", mock.Anything, int64(4), historyLimit).Return(ops, nil).Once()

		require.NoError(t, NewHistoryHandler(testDeps(client, nil, history), &nopLogger).
			Handle(context.Background(), &ports.BotUpdate{ChatID: 4}))
		assert.Equal(t, messages.History(ops), sent.Text)
		history.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		client := new(MockBotClient)
		sent := expectReply(client)
		history := new(MockHistory)
		history.On("Enabled").Return(true)
		history.On("Recent", mock.Anything, int64(4), historyLimit).Return(nil, errors.New("db down")).Once()

		err := NewHistoryHandler(testDeps(client, nil, history), &nopLogger).
			Handle(context.Background(), &ports.BotUpdate{ChatID: 4})
		assert.Error(t, err)
		assert.Equal(t, messages.InternalError, sent.Text)
	})
}

func TestForgetHandler(t *testing.T) {
	nopLogger := zerolog.Nop()
	client := new(MockBotClient)
	sent := expectReply(client)
	history := new(MockHistory)
	history.On("Enabled").Return(true)
	history.On("Forget", mock.Anything, int64(8)).Return(int64(3), nil).Once()

	require.NoError(t, NewForgetHandler(testDeps(client, nil, history), &nopLogger).
		Handle(context.Background(), &ports.BotUpdate{ChatID: 8}))
	assert.Equal(t, "Deleted 3 operations.", sent.Text)
	history.AssertExpectations(t)
}
