package encryption

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/roasbeef/go-go-gadget-paillier"
)

// PaillierAdapter is the additive counterpart to ToyRSAAdapter.
type PaillierAdapter struct {
	keySize    int
	privateKey *paillier.PrivateKey
}

// NewPaillierAdapter generates a fresh Paillier key of keySize bits.
func NewPaillierAdapter(keySize int) (*PaillierAdapter, error) {
	privateKey, err := paillier.GenerateKey(rand.Reader, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Paillier key: %w", err)
	}
	return &PaillierAdapter{keySize: keySize, privateKey: privateKey}, nil
}

func (p *PaillierAdapter) Name() string {
	return fmt.Sprintf("Paillier-%d", p.keySize)
}

func (p *PaillierAdapter) KeySize() int {
	return p.keySize
}

func (p *PaillierAdapter) PlaintextModulus() *big.Int {
	return new(big.Int).Set(p.privateKey.PublicKey.N)
}

func (p *PaillierAdapter) Encrypt(value *big.Int) ([]byte, error) {
	if value == nil || value.Sign() < 0 {
		return nil, fmt.Errorf("%w: plaintext must be non-negative", ErrInvalidArgument)
	}
	if value.Cmp(p.privateKey.PublicKey.N) >= 0 {
		return nil, fmt.Errorf("%w: %s >= N", ErrPlaintextOutOfRange, value)
	}
	return paillier.Encrypt(&p.privateKey.PublicKey, value.Bytes())
}

func (p *PaillierAdapter) Decrypt(ciphertext []byte) (*big.Int, error) {
	if err := p.checkCiphertext(ciphertext); err != nil {
		return nil, err
	}
	plaintext, err := paillier.Decrypt(p.privateKey, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return new(big.Int).SetBytes(plaintext), nil
}

// Add returns a ciphertext of m1+m2 mod N.
func (p *PaillierAdapter) Add(ciphertext1, ciphertext2 []byte) ([]byte, error) {
	if err := p.checkCiphertext(ciphertext1); err != nil {
		return nil, err
	}
	if err := p.checkCiphertext(ciphertext2); err != nil {
		return nil, err
	}
	return paillier.AddCipher(&p.privateKey.PublicKey, ciphertext1, ciphertext2), nil
}

// checkCiphertext requires c in (0, N^2).
func (p *PaillierAdapter) checkCiphertext(ciphertext []byte) error {
	if len(ciphertext) == 0 {
		return fmt.Errorf("%w: ciphertext is empty", ErrInvalidArgument)
	}
	c := new(big.Int).SetBytes(ciphertext)
	n := p.privateKey.PublicKey.N
	if c.Sign() == 0 || c.Cmp(new(big.Int).Mul(n, n)) >= 0 {
		return fmt.Errorf("%w: ciphertext outside (0, N^2)", ErrInvalidArgument)
	}
	return nil
}

func (p *PaillierAdapter) Multiply(ciphertext1, ciphertext2 []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: Paillier does not support homomorphic multiplication", ErrUnsupportedOperation)
}

func (p *PaillierAdapter) SupportsAddition() bool       { return true }
func (p *PaillierAdapter) SupportsMultiplication() bool { return false }
