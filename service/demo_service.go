package service

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quest-demos/encryption"
	"quest-demos/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageTooLong  = errors.New("message too long")
)

// Options tune a DemoService. Zero values fall back to the defaults.
type Options struct {
	SessionTTL       time.Duration
	MaxMessageLength int
	PaillierKeyBits  int
}

const (
	DefaultSessionTTL       = 30 * time.Minute
	DefaultMaxMessageLength = 20
	DefaultPaillierKeyBits  = 512
)

// DemoService owns the active key and the in-memory demo sessions.
type DemoService struct {
	key     *encryption.KeyParameters
	crypto  *encryption.CryptoService
	metrics *MetricsCollector
	logger  *zap.Logger
	opts    Options

	mu       sync.RWMutex
	sessions map[uuid.UUID]*DemoSession

	schemesOnce sync.Once
	schemes     []encryption.HomomorphicScheme
	schemesErr  error
}

func NewDemoService(key *encryption.KeyParameters, opts Options, logger *zap.Logger) *DemoService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.MaxMessageLength == 0 {
		opts.MaxMessageLength = DefaultMaxMessageLength
	}
	if opts.PaillierKeyBits <= 0 {
		opts.PaillierKeyBits = DefaultPaillierKeyBits
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DemoService{
		key:      key,
		crypto:   encryption.NewCryptoService(),
		metrics:  NewMetricsCollector(),
		logger:   logger,
		opts:     opts,
		sessions: make(map[uuid.UUID]*DemoSession),
	}
}

func (s *DemoService) KeyInfo() models.KeyInfo {
	return models.KeyInfo{
		P:           s.key.P().String(),
		Q:           s.key.Q().String(),
		N:           s.key.N().String(),
		Phi:         s.key.Phi().String(),
		E:           s.key.E().String(),
		D:           s.key.D().String(),
		NHex:        s.crypto.EncodeBig(s.key.N()),
		EHex:        s.crypto.EncodeBig(s.key.E()),
		DHex:        s.crypto.EncodeBig(s.key.D()),
		Bits:        s.key.Bits(),
		Fingerprint: s.crypto.KeyFingerprint(s.key),
	}
}

func (s *DemoService) CreateSession() models.SessionSnapshot {
	done := s.metrics.Track(OpSessionCreated)
	session := NewDemoSession(s.opts.SessionTTL)

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	done(nil)
	s.logger.Debug("session created", zap.String("session_id", session.ID().String()))
	return session.Snapshot()
}

func (s *DemoService) GetSession(id string) (models.SessionSnapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	return session.Snapshot(), nil
}

func (s *DemoService) Encrypt(id, text string) (snap models.SessionSnapshot, err error) {
	done := s.metrics.Track(OpEncrypt)
	defer func() { done(err) }()

	session, err := s.lookup(id)
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	if state := session.State(); !CanEncrypt(state) {
		err = fmt.Errorf("%w: cannot encrypt while %s", ErrInvalidTransition, state.Mode())
		return models.SessionSnapshot{}, err
	}
	if err = s.checkLength(text); err != nil {
		return models.SessionSnapshot{}, err
	}
	if err = session.Encrypt(s.key, text); err != nil {
		s.logger.Info("encrypt rejected", zap.String("session_id", id), zap.Error(err))
		return models.SessionSnapshot{}, err
	}
	return session.Snapshot(), nil
}

func (s *DemoService) Decrypt(id string) (snap models.SessionSnapshot, err error) {
	done := s.metrics.Track(OpDecrypt)
	defer func() { done(err) }()

	session, err := s.lookup(id)
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	if err = session.Decrypt(s.key); err != nil {
		s.logger.Info("decrypt rejected", zap.String("session_id", id), zap.Error(err))
		return models.SessionSnapshot{}, err
	}
	return session.Snapshot(), nil
}

func (s *DemoService) Reset(id string) (models.SessionSnapshot, error) {
	done := s.metrics.Track(OpReset)

	session, err := s.lookup(id)
	if err != nil {
		done(err)
		return models.SessionSnapshot{}, err
	}
	session.Reset()
	done(nil)
	return session.Snapshot(), nil
}

// EncryptMessage encrypts text without touching any session.
func (s *DemoService) EncryptMessage(text string) (cipher encryption.Ciphertext, err error) {
	done := s.metrics.Track(OpEncrypt)
	defer func() { done(err) }()

	if err = s.checkLength(text); err != nil {
		return nil, err
	}
	return encryption.EncryptMessage(text, s.key)
}

// DecryptMessage decrypts cipher without touching any session.
func (s *DemoService) DecryptMessage(cipher encryption.Ciphertext) (text string, err error) {
	done := s.metrics.Track(OpDecrypt)
	defer func() { done(err) }()

	return encryption.DecryptMessage(cipher, s.key)
}

// EncodeCiphertext renders cipher as hex for display.
func (s *DemoService) EncodeCiphertext(cipher encryption.Ciphertext) []string {
	return s.crypto.EncodeCiphertext(cipher)
}

// PruneExpired drops sessions whose TTL ran out and returns how many.
func (s *DemoService) PruneExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
			pruned++
		}
	}
	if pruned > 0 {
		s.logger.Info("pruned expired sessions", zap.Int("count", pruned), zap.Int("remaining", len(s.sessions)))
	}
	return pruned
}

func (s *DemoService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *DemoService) Metrics() MetricsResponse {
	return s.metrics.GetMetrics(s.SessionCount())
}

// ResetMetrics clears operation counters. Sessions are kept.
func (s *DemoService) ResetMetrics() MetricsResponse {
	s.metrics.Reset()
	s.logger.Info("metrics reset")
	return s.Metrics()
}

func (s *DemoService) lookup(id string) (*DemoSession, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}

	s.mu.RLock()
	session, ok := s.sessions[parsed]
	s.mu.RUnlock()
	if !ok || session.IsExpired(time.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

func (s *DemoService) checkLength(text string) error {
	if s.opts.MaxMessageLength > 0 && utf8.RuneCountInString(text) > s.opts.MaxMessageLength {
		return fmt.Errorf("%w: %d characters, limit is %d",
			ErrMessageTooLong, utf8.RuneCountInString(text), s.opts.MaxMessageLength)
	}
	return nil
}
