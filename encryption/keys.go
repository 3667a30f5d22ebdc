package encryption

import (
	"fmt"
	"math/big"
)

const (
	// MaxModulusBits bounds n so a single ModExp stays cheap.
	MaxModulusBits = 4096

	primalityRounds = 20
)

// Demo key from the quest page: p=61, q=53 -> n=3233, phi=3120, e=17, d=2753.
const (
	DemoP int64 = 61
	DemoQ int64 = 53
	DemoE int64 = 17
)

// KeyParameters is an immutable toy RSA key.
type KeyParameters struct {
	p, q, n, phi, e, d *big.Int
}

// PublicKey is the shareable half of a KeyParameters.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// NewKeyParameters validates p, q and e and derives n and d.
func NewKeyParameters(p, q, e *big.Int) (*KeyParameters, error) {
	if p == nil || q == nil || e == nil {
		return nil, fmt.Errorf("%w: p, q and e are required", ErrInvalidKey)
	}
	if p.Sign() <= 0 || q.Sign() <= 0 {
		return nil, fmt.Errorf("%w: p and q must be positive", ErrInvalidKey)
	}
	n := new(big.Int).Mul(p, q)
	if n.BitLen() > MaxModulusBits {
		return nil, fmt.Errorf("%w: modulus is %d bits, limit is %d", ErrInvalidKey, n.BitLen(), MaxModulusBits)
	}
	if !p.ProbablyPrime(primalityRounds) {
		return nil, fmt.Errorf("%w: p=%s is not prime", ErrInvalidKey, p)
	}
	if !q.ProbablyPrime(primalityRounds) {
		return nil, fmt.Errorf("%w: q=%s is not prime", ErrInvalidKey, q)
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: p and q must differ", ErrInvalidKey)
	}

	pMinusOne := new(big.Int).Sub(p, one)
	qMinusOne := new(big.Int).Sub(q, one)
	phi := pMinusOne.Mul(pMinusOne, qMinusOne)

	if e.Cmp(one) <= 0 || e.Cmp(phi) >= 0 {
		return nil, fmt.Errorf("%w: e=%s must lie in (1, %s)", ErrInvalidKey, e, phi)
	}

	d := new(big.Int)
	if gcd := new(big.Int).GCD(d, nil, e, phi); gcd.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(e=%s, phi=%s) = %s", ErrInvalidKey, e, phi, gcd)
	}
	if d.Sign() < 0 {
		d.Add(d, phi)
	}

	return &KeyParameters{
		p:   new(big.Int).Set(p),
		q:   new(big.Int).Set(q),
		n:   n,
		phi: phi,
		e:   new(big.Int).Set(e),
		d:   d,
	}, nil
}

// NewKeyParametersInt64 is NewKeyParameters for machine-sized inputs.
func NewKeyParametersInt64(p, q, e int64) (*KeyParameters, error) {
	return NewKeyParameters(big.NewInt(p), big.NewInt(q), big.NewInt(e))
}

// DefaultKeyParameters returns the demo key (61, 53, 17).
func DefaultKeyParameters() *KeyParameters {
	key, err := NewKeyParametersInt64(DemoP, DemoQ, DemoE)
	if err != nil {
		panic(err)
	}
	return key
}

func (k *KeyParameters) P() *big.Int   { return new(big.Int).Set(k.p) }
func (k *KeyParameters) Q() *big.Int   { return new(big.Int).Set(k.q) }
func (k *KeyParameters) N() *big.Int   { return new(big.Int).Set(k.n) }
func (k *KeyParameters) Phi() *big.Int { return new(big.Int).Set(k.phi) }
func (k *KeyParameters) E() *big.Int   { return new(big.Int).Set(k.e) }
func (k *KeyParameters) D() *big.Int   { return new(big.Int).Set(k.d) }

// Public returns (n, e).
func (k *KeyParameters) Public() PublicKey {
	return PublicKey{N: k.N(), E: k.E()}
}

// Bits returns the bit length of the modulus.
func (k *KeyParameters) Bits() int {
	return k.n.BitLen()
}

func (k *KeyParameters) String() string {
	return fmt.Sprintf("rsa(p=%s, q=%s, n=%s, e=%s)", k.p, k.q, k.n, k.e)
}
