package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptPrivateKey(t *testing.T) {
	key, _, err := GenerateKeyPair()
	require.NoError(t, err)

	ciphertext, salt, err := EncryptPrivateKey(key, []byte("Passw0rd!"))
	require.NoError(t, err)
	assert.Len(t, salt, saltLen)

	t.Run("round trip", func(t *testing.T) {
		got, err := DecryptPrivateKey(ciphertext, []byte("Passw0rd!"), salt)
		require.NoError(t, err)
		assert.True(t, key.Equal(got))
	})

	t.Run("wrong secret", func(t *testing.T) {
		got, err := DecryptPrivateKey(ciphertext, []byte("Passw0rd?"), salt)
		assert.ErrorIs(t, err, ErrAuthentication)
		assert.Nil(t, got)
	})

	t.Run("wrong salt", func(t *testing.T) {
		other := make([]byte, len(salt))
		copy(other, salt)
		other[0] ^= 0xff
		_, err := DecryptPrivateKey(ciphertext, []byte("Passw0rd!"), other)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[len(tampered)-1] ^= 0x01
		_, err := DecryptPrivateKey(tampered, []byte("Passw0rd!"), salt)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := DecryptPrivateKey(ciphertext[:nonceLen], []byte("Passw0rd!"), salt)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := DecryptPrivateKey(ciphertext, nil, salt)
		assert.ErrorIs(t, err, ErrEmptySecret)
	})
}

func TestEncryptPrivateKeyFreshSalt(t *testing.T) {
	key, _, err := GenerateKeyPair()
	require.NoError(t, err)

	passwordCT, passwordSalt, err := EncryptPrivateKey(key, []byte("1234"))
	require.NoError(t, err)
	pinCT, pinSalt, err := EncryptPrivateKey(key, []byte("1234"))
	require.NoError(t, err)

	assert.NotEqual(t, passwordSalt, pinSalt)
	assert.NotEqual(t, passwordCT, pinCT)

	// material from one encryption does not open with the salt of the other
	_, err = DecryptPrivateKey(passwordCT, []byte("1234"), pinSalt)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestEncryptPrivateKeyRejectsEmptySecret(t *testing.T) {
	key, _, err := GenerateKeyPair()
	require.NoError(t, err)

	_, _, err = EncryptPrivateKey(key, []byte{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestSignVerify(t *testing.T) {
	key, pub, err := GenerateKeyPair()
	require.NoError(t, err)
	message := []byte("9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08")

	sig, err := Sign(key, message)
	require.NoError(t, err)
	assert.True(t, Verify(pub, message, sig))

	t.Run("pss is probabilistic", func(t *testing.T) {
		again, err := Sign(key, message)
		require.NoError(t, err)
		assert.NotEqual(t, sig, again)
		assert.True(t, Verify(pub, message, again))
	})

	t.Run("message bit flip", func(t *testing.T) {
		for _, i := range []int{0, len(message) / 2, len(message) - 1} {
			mutated := append([]byte(nil), message...)
			mutated[i] ^= 0x01
			assert.False(t, Verify(pub, mutated, sig), "byte %d", i)
		}
	})

	t.Run("signature bit flip", func(t *testing.T) {
		for _, i := range []int{0, len(sig) / 2, len(sig) - 1} {
			mutated := append([]byte(nil), sig...)
			mutated[i] ^= 0x80
			assert.False(t, Verify(pub, message, mutated), "byte %d", i)
		}
	})

	t.Run("other key", func(t *testing.T) {
		_, otherPub, err := GenerateKeyPair()
		require.NoError(t, err)
		assert.False(t, Verify(otherPub, message, sig))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, Verify(pub, message, nil))
	})
}

func TestPublicKeyPEM(t *testing.T) {
	_, pub, err := GenerateKeyPair()
	require.NoError(t, err)

	encoded, err := MarshalPublicKey(pub)
	require.NoError(t, err)
	assert.Contains(t, encoded, "BEGIN PUBLIC KEY")

	parsed, err := ParsePublicKey(encoded)
	require.NoError(t, err)
	assert.True(t, pub.Equal(parsed))

	_, err = ParsePublicKey("not a key")
	assert.Error(t, err)
}
