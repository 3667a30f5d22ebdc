package encryption

import (
	"fmt"
	"math/big"
	"time"
)

// HomomorphicScheme is a public-key scheme with at most one homomorphic
// operation. Textbook RSA multiplies under encryption, Paillier adds.
type HomomorphicScheme interface {
	Name() string
	KeySize() int
	PlaintextModulus() *big.Int

	Encrypt(value *big.Int) ([]byte, error)
	Decrypt(ciphertext []byte) (*big.Int, error)
	Add(ciphertext1, ciphertext2 []byte) ([]byte, error)
	Multiply(ciphertext1, ciphertext2 []byte) ([]byte, error)

	SupportsAddition() bool
	SupportsMultiplication() bool
}

// BenchmarkResult records one homomorphic round trip for a scheme.
type BenchmarkResult struct {
	SchemeName     string   `json:"scheme"`
	KeySize        int      `json:"key_size"`
	Operation      string   `json:"operation"`
	A              *big.Int `json:"a"`
	B              *big.Int `json:"b"`
	Result         *big.Int `json:"result"`
	Expected       *big.Int `json:"expected"`
	Correct        bool     `json:"correct"`
	CiphertextSize int      `json:"ciphertext_size"`
	EncryptionTime int64    `json:"encryption_ns"`
	CombineTime    int64    `json:"combine_ns"`
	DecryptionTime int64    `json:"decryption_ns"`
}

// Benchmark encrypts a and b, combines them with whichever operation the
// scheme supports, and decrypts the result.
func Benchmark(scheme HomomorphicScheme, a, b *big.Int) (*BenchmarkResult, error) {
	res := &BenchmarkResult{
		SchemeName: scheme.Name(),
		KeySize:    scheme.KeySize(),
		A:          new(big.Int).Set(a),
		B:          new(big.Int).Set(b),
	}

	start := time.Now()
	c1, err := scheme.Encrypt(a)
	if err != nil {
		return nil, fmt.Errorf("%s: encrypt a: %w", scheme.Name(), err)
	}
	c2, err := scheme.Encrypt(b)
	if err != nil {
		return nil, fmt.Errorf("%s: encrypt b: %w", scheme.Name(), err)
	}
	res.EncryptionTime = time.Since(start).Nanoseconds()
	res.CiphertextSize = len(c1)

	start = time.Now()
	var combined []byte
	expected := new(big.Int)
	switch {
	case scheme.SupportsMultiplication():
		res.Operation = "multiply"
		combined, err = scheme.Multiply(c1, c2)
		expected.Mul(a, b)
	case scheme.SupportsAddition():
		res.Operation = "add"
		combined, err = scheme.Add(c1, c2)
		expected.Add(a, b)
	default:
		return nil, fmt.Errorf("%w: %s has no homomorphic operation", ErrUnsupportedOperation, scheme.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", scheme.Name(), res.Operation, err)
	}
	res.CombineTime = time.Since(start).Nanoseconds()

	start = time.Now()
	plain, err := scheme.Decrypt(combined)
	if err != nil {
		return nil, fmt.Errorf("%s: decrypt: %w", scheme.Name(), err)
	}
	res.DecryptionTime = time.Since(start).Nanoseconds()

	res.Result = plain
	res.Expected = expected.Mod(expected, scheme.PlaintextModulus())
	res.Correct = plain.Cmp(res.Expected) == 0
	return res, nil
}
