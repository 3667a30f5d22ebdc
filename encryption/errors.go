package encryption

import "errors"

var (
	// ErrInvalidArgument is returned for malformed modular arithmetic inputs
	// and for ciphertext units outside [0, n).
	ErrInvalidArgument = errors.New("encryption: invalid argument")

	// ErrInvalidKey is returned when key parameters violate the RSA invariant.
	ErrInvalidKey = errors.New("encryption: invalid key")

	// ErrPlaintextOutOfRange is returned for a plaintext unit >= n.
	ErrPlaintextOutOfRange = errors.New("encryption: plaintext out of range")
)

// ErrUnsupportedOperation is returned by a scheme asked for a homomorphic
// operation it does not have.
var ErrUnsupportedOperation = errors.New("encryption: unsupported operation")
