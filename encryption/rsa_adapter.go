package encryption

import (
	"fmt"
	"math/big"
)

// ToyRSAAdapter exposes a KeyParameters through HomomorphicScheme.
type ToyRSAAdapter struct {
	key *KeyParameters
}

// NewToyRSAAdapter wraps key.
func NewToyRSAAdapter(key *KeyParameters) *ToyRSAAdapter {
	return &ToyRSAAdapter{key: key}
}

func (r *ToyRSAAdapter) Name() string {
	return fmt.Sprintf("ToyRSA-%d", r.key.Bits())
}

func (r *ToyRSAAdapter) KeySize() int {
	return r.key.Bits()
}

func (r *ToyRSAAdapter) PlaintextModulus() *big.Int {
	return r.key.N()
}

func (r *ToyRSAAdapter) Encrypt(value *big.Int) ([]byte, error) {
	c, err := Encrypt(r.key, value)
	if err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

func (r *ToyRSAAdapter) Decrypt(ciphertext []byte) (*big.Int, error) {
	return Decrypt(r.key, new(big.Int).SetBytes(ciphertext))
}

// Add is not available: textbook RSA only multiplies under encryption.
func (r *ToyRSAAdapter) Add(ciphertext1, ciphertext2 []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: RSA does not support homomorphic addition", ErrUnsupportedOperation)
}

// Multiply returns E(m1)*E(m2) mod n, which decrypts to m1*m2 mod n.
func (r *ToyRSAAdapter) Multiply(ciphertext1, ciphertext2 []byte) ([]byte, error) {
	c1 := new(big.Int).SetBytes(ciphertext1)
	c2 := new(big.Int).SetBytes(ciphertext2)
	if c1.Cmp(r.key.n) >= 0 || c2.Cmp(r.key.n) >= 0 {
		return nil, fmt.Errorf("%w: ciphertext exceeds modulus", ErrInvalidArgument)
	}
	product := c1.Mul(c1, c2)
	return product.Mod(product, r.key.n).Bytes(), nil
}

func (r *ToyRSAAdapter) SupportsAddition() bool       { return false }
func (r *ToyRSAAdapter) SupportsMultiplication() bool { return true }
