package encryption

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyParameters(t *testing.T) {
	key := DefaultKeyParameters()

	assert.Equal(t, int64(61), key.P().Int64())
	assert.Equal(t, int64(53), key.Q().Int64())
	assert.Equal(t, int64(3233), key.N().Int64())
	assert.Equal(t, int64(3120), key.Phi().Int64())
	assert.Equal(t, int64(17), key.E().Int64())
	assert.Equal(t, int64(2753), key.D().Int64())
	assert.Equal(t, 12, key.Bits())
}

func TestNewKeyParameters_Invariant(t *testing.T) {
	tests := []struct{ p, q, e int64 }{
		{61, 53, 17},
		{11, 13, 7},
		{101, 113, 3},
		{1009, 1013, 65537},
	}

	for _, tt := range tests {
		key, err := NewKeyParametersInt64(tt.p, tt.q, tt.e)
		require.NoError(t, err, "p=%d q=%d e=%d", tt.p, tt.q, tt.e)

		ed := new(big.Int).Mul(key.E(), key.D())
		assert.Equal(t, int64(1), ed.Mod(ed, key.Phi()).Int64())
		assert.Equal(t, tt.p*tt.q, key.N().Int64())
	}
}

func TestNewKeyParameters_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		p, q, e int64
	}{
		{"e_shares_factor_with_phi", 61, 53, 15},
		{"even_e", 61, 53, 2},
		{"p_not_prime", 60, 53, 17},
		{"q_not_prime", 61, 51, 17},
		{"equal_primes", 61, 61, 7},
		{"e_is_one", 61, 53, 1},
		{"e_not_below_phi", 61, 53, 3121},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewKeyParametersInt64(tt.p, tt.q, tt.e)
			assert.ErrorIs(t, err, ErrInvalidKey)
			assert.Nil(t, key)
		})
	}
}

func TestNewKeyParameters_ModulusTooWide(t *testing.T) {
	p := new(big.Int).Lsh(big.NewInt(1), 2203)
	p.Sub(p, big.NewInt(1)) // Mersenne prime 2^2203-1
	q := new(big.Int).Lsh(big.NewInt(1), 2281)
	q.Sub(q, big.NewInt(1)) // Mersenne prime 2^2281-1

	_, err := NewKeyParameters(p, q, big.NewInt(65537))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestKeyParameters_AccessorsReturnCopies(t *testing.T) {
	key := DefaultKeyParameters()

	key.N().SetInt64(1)
	key.D().SetInt64(1)

	assert.Equal(t, int64(3233), key.N().Int64())
	assert.Equal(t, int64(2753), key.D().Int64())
}

func TestKeyParameters_StringHidesPrivateExponent(t *testing.T) {
	s := DefaultKeyParameters().String()
	assert.Contains(t, s, "n=3233")
	assert.NotContains(t, s, "2753")
}
