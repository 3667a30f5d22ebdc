package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"quest-demos/encryption"
)

func newTestService(t *testing.T, opts Options) *DemoService {
	t.Helper()
	return NewDemoService(encryption.DefaultKeyParameters(), opts, zaptest.NewLogger(t))
}

func TestDemoService_SessionLifecycle(t *testing.T) {
	svc := newTestService(t, Options{})

	snap := svc.CreateSession()
	assert.Equal(t, "idle", snap.Mode)
	assert.Equal(t, 1, svc.SessionCount())

	snap, err := svc.Encrypt(snap.ID, "HI")
	require.NoError(t, err)
	assert.Equal(t, "encrypted", snap.Mode)
	require.Len(t, snap.Ciphertext, 2)
	assert.Equal(t, int64(3000), snap.Ciphertext[0].Int64())
	assert.Equal(t, int64(1486), snap.Ciphertext[1].Int64())

	snap, err = svc.Decrypt(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "HI", snap.Recovered)

	snap, err = svc.Reset(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "idle", snap.Mode)

	got, err := svc.GetSession(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
}

func TestDemoService_UnknownSession(t *testing.T) {
	svc := newTestService(t, Options{})

	_, err := svc.GetSession("not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Decrypt("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDemoService_MessageTooLong(t *testing.T) {
	svc := newTestService(t, Options{MaxMessageLength: 5})
	snap := svc.CreateSession()

	_, err := svc.Encrypt(snap.ID, "too long")
	assert.ErrorIs(t, err, ErrMessageTooLong)

	_, err = svc.EncryptMessage("too long")
	assert.ErrorIs(t, err, ErrMessageTooLong)

	_, err = svc.Encrypt(snap.ID, "short")
	assert.NoError(t, err)
}

func TestDemoService_TransitionCheckedBeforeLength(t *testing.T) {
	svc := newTestService(t, Options{MaxMessageLength: 5})
	snap := svc.CreateSession()

	_, err := svc.Encrypt(snap.ID, "HI")
	require.NoError(t, err)

	_, err = svc.Encrypt(snap.ID, "too long")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrMessageTooLong)

	got, err := svc.GetSession(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "encrypted", got.Mode)
	assert.Equal(t, "HI", got.Plaintext)
}

func TestDemoService_NegativeLengthDisablesLimit(t *testing.T) {
	svc := newTestService(t, Options{MaxMessageLength: -1})

	cipher, err := svc.EncryptMessage("a message well past twenty characters")
	require.NoError(t, err)
	assert.Len(t, cipher, 37)
}

func TestDemoService_StatelessRoundTrip(t *testing.T) {
	svc := newTestService(t, Options{})

	cipher, err := svc.EncryptMessage("Hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xbb8", "0x521", "0x2e9", "0x2e9", "0x889"}, svc.EncodeCiphertext(cipher))

	text, err := svc.DecryptMessage(cipher)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestDemoService_PruneExpired(t *testing.T) {
	svc := newTestService(t, Options{SessionTTL: time.Minute})
	snap := svc.CreateSession()
	svc.CreateSession()

	assert.Equal(t, 0, svc.PruneExpired(time.Now()))
	assert.Equal(t, 2, svc.PruneExpired(time.Now().Add(time.Hour)))
	assert.Equal(t, 0, svc.SessionCount())

	_, err := svc.GetSession(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDemoService_KeyInfo(t *testing.T) {
	info := newTestService(t, Options{}).KeyInfo()

	assert.Equal(t, "3233", info.N)
	assert.Equal(t, "2753", info.D)
	assert.Equal(t, "3120", info.Phi)
	assert.Equal(t, "0xca1", info.NHex)
	assert.Len(t, info.Fingerprint, 16)
}

func TestDemoService_Metrics(t *testing.T) {
	svc := newTestService(t, Options{})
	snap := svc.CreateSession()

	_, err := svc.Decrypt(snap.ID)
	require.Error(t, err)
	_, err = svc.Encrypt(snap.ID, "A")
	require.NoError(t, err)

	m := svc.Metrics()
	assert.Equal(t, 1, m.Sessions)
	assert.Equal(t, 1, m.Operations[OpEncrypt].Count)
	assert.Equal(t, 0, m.Operations[OpEncrypt].Failures)
	assert.Equal(t, 1, m.Operations[OpDecrypt].Count)
	assert.Equal(t, 1, m.Operations[OpDecrypt].Failures)
	assert.Equal(t, 1, m.Operations[OpSessionCreated].Count)

	m = svc.ResetMetrics()
	assert.Empty(t, m.Operations)
	assert.Equal(t, 1, m.Sessions)
}

func TestDemoService_ConcurrentSessions(t *testing.T) {
	svc := newTestService(t, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := svc.CreateSession()
			_, err := svc.Encrypt(snap.ID, "HI")
			assert.NoError(t, err)
			got, err := svc.Decrypt(snap.ID)
			assert.NoError(t, err)
			assert.Equal(t, "HI", got.Recovered)
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, svc.SessionCount())
}

func TestDemoService_CompareSchemes(t *testing.T) {
	svc := newTestService(t, Options{PaillierKeyBits: 256})

	results, err := svc.CompareSchemes(6, 7)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "multiply", results[0].Operation)
	assert.Equal(t, int64(42), results[0].Result.Int64())
	assert.Equal(t, "add", results[1].Operation)
	assert.Equal(t, int64(13), results[1].Result.Int64())

	_, err = svc.CompareSchemes(-1, 2)
	assert.ErrorIs(t, err, encryption.ErrInvalidArgument)
}
