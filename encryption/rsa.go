package encryption

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

// Message is a sequence of plaintext units, one per code point.
type Message []*big.Int

// Ciphertext holds one encrypted unit per plaintext unit, in order.
type Ciphertext []*big.Int

// Encrypt computes unit^e mod n.
func Encrypt(key *KeyParameters, unit *big.Int) (*big.Int, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidKey)
	}
	if unit == nil || unit.Sign() < 0 {
		return nil, fmt.Errorf("%w: plaintext unit must be non-negative", ErrInvalidArgument)
	}
	if unit.Cmp(key.n) >= 0 {
		return nil, fmt.Errorf("%w: %s >= n=%s", ErrPlaintextOutOfRange, unit, key.n)
	}
	return ModExp(unit, key.e, key.n)
}

// Decrypt computes unit^d mod n.
func Decrypt(key *KeyParameters, unit *big.Int) (*big.Int, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidKey)
	}
	if unit == nil || unit.Sign() < 0 || unit.Cmp(key.n) >= 0 {
		return nil, fmt.Errorf("%w: ciphertext unit must lie in [0, %s)", ErrInvalidArgument, key.n)
	}
	return ModExp(unit, key.d, key.n)
}

// EncodeMessage maps text to its code points.
func EncodeMessage(text string) Message {
	msg := make(Message, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		msg = append(msg, big.NewInt(int64(r)))
	}
	return msg
}

// EncryptMessage encrypts text one code point at a time.
func EncryptMessage(text string, key *KeyParameters) (Ciphertext, error) {
	msg := EncodeMessage(text)
	out := make(Ciphertext, len(msg))
	for i, unit := range msg {
		c, err := Encrypt(key, unit)
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// DecryptMessage decrypts each unit and reassembles the text by code point.
func DecryptMessage(cipher Ciphertext, key *KeyParameters) (string, error) {
	var sb strings.Builder
	for i, unit := range cipher {
		m, err := Decrypt(key, unit)
		if err != nil {
			return "", fmt.Errorf("unit %d: %w", i, err)
		}
		if !m.IsInt64() || m.Int64() > utf8.MaxRune || !utf8.ValidRune(rune(m.Int64())) {
			return "", fmt.Errorf("%w: unit %d decrypts to %s, not a code point", ErrInvalidArgument, i, m)
		}
		sb.WriteRune(rune(m.Int64()))
	}
	return sb.String(), nil
}

// ParseCiphertext reads decimal ciphertext units.
func ParseCiphertext(values []string) (Ciphertext, error) {
	out := make(Ciphertext, len(values))
	for i, v := range values {
		c, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
		if !ok {
			return nil, fmt.Errorf("%w: unit %d is not an integer: %q", ErrInvalidArgument, i, v)
		}
		out[i] = c
	}
	return out, nil
}

// Strings renders each unit in decimal.
func (c Ciphertext) Strings() []string {
	out := make([]string, len(c))
	for i, v := range c {
		out[i] = v.String()
	}
	return out
}
