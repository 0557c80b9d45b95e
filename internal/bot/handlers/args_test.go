package handlers

import (
	"CipherBot/internal/bot/messages"
	"CipherBot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextField(t *testing.T) {
	field, rest := nextField("  lemon   attack  at dawn ")
	assert.Equal(t, "lemon", field)
	assert.Equal(t, "attack  at dawn ", rest)

	field, rest = nextField("single")
	assert.Equal(t, "single", field)
	assert.Equal(t, "", rest)

	field, rest = nextField("")
	assert.Equal(t, "", field)
	assert.Equal(t, "", rest)
}

func TestParseCipherArgs(t *testing.T) {
	testCases := []struct {
		name    string
		args    string
		want    cipherArgs
		wantErr error
	}{
		{"explicit kind", "vigenere lemon attack at dawn", cipherArgs{domain.KindVigenere, "lemon", "attack at dawn"}, nil},
		{"kind is case-insensitive", "CAESAR 3 Hello, World!", cipherArgs{domain.KindCaesar, "3", "Hello, World!"}, nil},
		{"default kind", "3 Hello", cipherArgs{domain.KindCaesar, "3", "Hello"}, nil},
		{"multi-line text", "caesar 1 a\nb", cipherArgs{domain.KindCaesar, "1", "a\nb"}, nil},
		{"missing text", "caesar 3", cipherArgs{}, messages.ErrMissingArguments},
		{"missing key", "vigenere", cipherArgs{}, messages.ErrMissingArguments},
		{"nothing", "", cipherArgs{}, messages.ErrMissingArguments},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCipherArgs(tc.args, domain.KindCaesar)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
