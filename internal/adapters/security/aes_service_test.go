package security

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper function to generate a valid key
func generateKey(t *testing.T, length int) []byte {
	t.Helper()
	key := make([]byte, length)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAESService_EncryptDecrypt_Roundtrip(t *testing.T) {
	nopLogger := zerolog.Nop()

	testCases := []struct {
		name    string
		keyLen  int
		payload []byte
	}{
		{"AES-128 (16-byte key)", 16, []byte("Khoor, Zruog!")},
		{"AES-256 (32-byte key)", 32, []byte("lxfopvefrnhr")},
		{"Empty Payload", 32, []byte("")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, err := NewAESService(generateKey(t, tc.keyLen), &nopLogger)
			require.NoError(t, err)

			ciphertext, err := service.Encrypt(tc.payload)
			require.NoError(t, err)
			assert.NotEqual(t, tc.payload, ciphertext)

			plaintext, err := service.Decrypt(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, string(tc.payload), string(plaintext))
		})
	}
}

func TestAESService_Decrypt_Tampered(t *testing.T) {
	nopLogger := zerolog.Nop()
	service, err := NewAESService(generateKey(t, 32), &nopLogger)
	require.NoError(t, err)

	ciphertext, err := service.Encrypt([]byte("do not tamper with this"))
	require.NoError(t, err)

	ciphertext[len(ciphertext)-1] = ^ciphertext[len(ciphertext)-1]

	_, err = service.Decrypt(ciphertext)
	assert.Error(t, err)

	_, err = service.Decrypt([]byte("short"))
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestNewAESService_InvalidKey(t *testing.T) {
	nopLogger := zerolog.Nop()

	_, err := NewAESService([]byte("badkey"), &nopLogger)
	assert.Error(t, err)

	_, err = NewAESServiceFromHex("not-hex", &nopLogger)
	assert.Error(t, err)
}

func TestSealOpenString(t *testing.T) {
	nopLogger := zerolog.Nop()
	service, err := NewAESServiceFromHex(hex.EncodeToString(generateKey(t, 32)), &nopLogger)
	require.NoError(t, err)

	stored, err := SealString(service, "Hello, World!")
	require.NoError(t, err)
	assert.NotContains(t, stored, "Hello")

	opened, err := OpenString(service, stored)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", opened)

	_, err = OpenString(service, "%%% not base64 %%%")
	assert.Error(t, err)
}
