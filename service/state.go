package service

import (
	"errors"
	"strings"

	"quest-demos/encryption"
)

var ErrEmptyMessage = errors.New("message is empty")

type Mode string

const (
	ModeIdle      Mode = "idle"
	ModeEncrypted Mode = "encrypted"
	ModeDecrypted Mode = "decrypted"
)

// DemoState is one of Idle, Encrypted or Decrypted. Each state only has the
// transition methods that are legal from it, so decrypting an Idle state
// does not compile.
type DemoState interface {
	Mode() Mode
	demoState()
}

// Idle holds no ciphertext.
type Idle struct{}

// Encrypted holds the ciphertext of Plaintext; decrypt is available.
type Encrypted struct {
	Plaintext  string
	Ciphertext encryption.Ciphertext
}

// Decrypted holds the recovered text; re-encrypt and reset are available.
type Decrypted struct {
	Plaintext  string
	Ciphertext encryption.Ciphertext
	Recovered  string
}

func (Idle) Mode() Mode      { return ModeIdle }
func (Encrypted) Mode() Mode { return ModeEncrypted }
func (Decrypted) Mode() Mode { return ModeDecrypted }

func (Idle) demoState()      {}
func (Encrypted) demoState() {}
func (Decrypted) demoState() {}

func (Idle) Encrypt(key *encryption.KeyParameters, text string) (Encrypted, error) {
	return encryptState(key, text)
}

// Encrypt starts over with new text.
func (Decrypted) Encrypt(key *encryption.KeyParameters, text string) (Encrypted, error) {
	return encryptState(key, text)
}

func (s Encrypted) Decrypt(key *encryption.KeyParameters) (Decrypted, error) {
	recovered, err := encryption.DecryptMessage(s.Ciphertext, key)
	if err != nil {
		return Decrypted{}, err
	}
	return Decrypted{
		Plaintext:  s.Plaintext,
		Ciphertext: s.Ciphertext,
		Recovered:  recovered,
	}, nil
}

func (Idle) Reset() Idle      { return Idle{} }
func (Encrypted) Reset() Idle { return Idle{} }
func (Decrypted) Reset() Idle { return Idle{} }

func encryptState(key *encryption.KeyParameters, text string) (Encrypted, error) {
	if strings.TrimSpace(text) == "" {
		return Encrypted{}, ErrEmptyMessage
	}
	cipher, err := encryption.EncryptMessage(text, key)
	if err != nil {
		return Encrypted{}, err
	}
	return Encrypted{Plaintext: text, Ciphertext: cipher}, nil
}

// CanEncrypt reports whether state has an Encrypt transition.
func CanEncrypt(state DemoState) bool {
	switch state.(type) {
	case Idle, Decrypted:
		return true
	}
	return false
}

// CanDecrypt reports whether state has a Decrypt transition.
func CanDecrypt(state DemoState) bool {
	_, ok := state.(Encrypted)
	return ok
}
