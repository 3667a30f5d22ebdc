package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"quest-demos/encryption"
	"quest-demos/models"
)

var ErrInvalidTransition = errors.New("invalid transition")

// DemoSession holds the state of one presentation-layer demo. Requests
// arrive as untyped actions, so illegal ones are rejected at run time with
// ErrInvalidTransition.
type DemoSession struct {
	id        uuid.UUID
	createdAt time.Time
	ttl       time.Duration

	mu        sync.RWMutex
	state     DemoState
	expiresAt time.Time
}

func NewDemoSession(ttl time.Duration) *DemoSession {
	now := time.Now()
	return &DemoSession{
		id:        uuid.New(),
		createdAt: now,
		ttl:       ttl,
		state:     Idle{},
		expiresAt: now.Add(ttl),
	}
}

func (s *DemoSession) ID() uuid.UUID {
	return s.id
}

func (s *DemoSession) State() DemoState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *DemoSession) Encrypt(key *encryption.KeyParameters, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next Encrypted
		err  error
	)
	switch st := s.state.(type) {
	case Idle:
		next, err = st.Encrypt(key, text)
	case Decrypted:
		next, err = st.Encrypt(key, text)
	default:
		return fmt.Errorf("%w: cannot encrypt while %s", ErrInvalidTransition, s.state.Mode())
	}
	if err != nil {
		return err
	}
	s.set(next)
	return nil
}

func (s *DemoSession) Decrypt(key *encryption.KeyParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.(Encrypted)
	if !ok {
		return fmt.Errorf("%w: cannot decrypt while %s", ErrInvalidTransition, s.state.Mode())
	}
	next, err := st.Decrypt(key)
	if err != nil {
		return err
	}
	s.set(next)
	return nil
}

func (s *DemoSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(Idle{})
}

func (s *DemoSession) IsExpired(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !now.Before(s.expiresAt)
}

func (s *DemoSession) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.SessionSnapshot{
		ID:         s.id.String(),
		Mode:       string(s.state.Mode()),
		CanEncrypt: CanEncrypt(s.state),
		CanDecrypt: CanDecrypt(s.state),
		CreatedAt:  s.createdAt,
		ExpiresAt:  s.expiresAt,
	}
	switch st := s.state.(type) {
	case Encrypted:
		snap.Plaintext = st.Plaintext
		snap.Ciphertext = st.Ciphertext
	case Decrypted:
		snap.Plaintext = st.Plaintext
		snap.Ciphertext = st.Ciphertext
		snap.Recovered = st.Recovered
	}
	return snap
}

// set must be called with mu held. Every transition extends the session.
func (s *DemoSession) set(state DemoState) {
	s.state = state
	s.expiresAt = time.Now().Add(s.ttl)
}
