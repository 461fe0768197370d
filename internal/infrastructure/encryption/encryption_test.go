package encryption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "passphrase", key: "correct horse battery staple"},
		{name: "hex key", key: strings.Repeat("ab", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(tt.key)
			require.NoError(t, err)

			ciphertext, err := svc.Encrypt("shpat_secret")
			require.NoError(t, err)
			assert.NotEqual(t, "shpat_secret", ciphertext)

			plaintext, err := svc.Decrypt(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, "shpat_secret", plaintext)
		})
	}
}

func TestService_NonceIsRandom(t *testing.T) {
	svc, err := NewService("k")
	require.NoError(t, err)

	a, err := svc.Encrypt("same")
	require.NoError(t, err)
	b, err := svc.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestService_EmptyValues(t *testing.T) {
	svc, err := NewService("k")
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, ciphertext)

	plaintext, err := svc.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestService_Errors(t *testing.T) {
	_, err := NewService("")
	assert.Error(t, err)

	svc, err := NewService("k1")
	require.NoError(t, err)
	other, err := NewService("k2")
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("value")
	require.NoError(t, err)

	_, err = other.Decrypt(ciphertext)
	assert.Error(t, err)

	_, err = svc.Decrypt("not base64!")
	assert.ErrorIs(t, err, ErrMalformedCiphertext)

	_, err = svc.Decrypt("AAAA")
	assert.ErrorIs(t, err, ErrMalformedCiphertext)
}
