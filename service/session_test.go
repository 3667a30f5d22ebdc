package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quest-demos/encryption"
)

func TestDemoSession_Transitions(t *testing.T) {
	key := encryption.DefaultKeyParameters()
	session := NewDemoSession(time.Minute)

	err := session.Decrypt(key)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, session.Encrypt(key, "HI"))
	assert.Equal(t, ModeEncrypted, session.State().Mode())

	err = session.Encrypt(key, "again")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, session.Decrypt(key))
	snap := session.Snapshot()
	assert.Equal(t, "decrypted", snap.Mode)
	assert.Equal(t, "HI", snap.Recovered)
	assert.False(t, snap.CanDecrypt)
	assert.True(t, snap.CanEncrypt)

	err = session.Decrypt(key)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	session.Reset()
	snap = session.Snapshot()
	assert.Equal(t, "idle", snap.Mode)
	assert.Empty(t, snap.Ciphertext)
	assert.Empty(t, snap.Plaintext)
}

func TestDemoSession_FailedEncryptKeepsState(t *testing.T) {
	key := encryption.DefaultKeyParameters()
	session := NewDemoSession(time.Minute)

	err := session.Encrypt(key, "€")
	assert.ErrorIs(t, err, encryption.ErrPlaintextOutOfRange)
	assert.Equal(t, ModeIdle, session.State().Mode())
}

func TestDemoSession_Expiry(t *testing.T) {
	session := NewDemoSession(time.Minute)

	assert.False(t, session.IsExpired(time.Now()))
	assert.True(t, session.IsExpired(time.Now().Add(2*time.Minute)))
}
