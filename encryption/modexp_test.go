package encryption

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModExp(t *testing.T) {
	tests := []struct {
		name           string
		base, exp, mod int64
		want           int64
	}{
		{name: "simple", base: 2, exp: 10, mod: 1000, want: 24},
		{name: "zero_exponent", base: 7, exp: 0, mod: 13, want: 1},
		{name: "zero_exponent_unit_modulus", base: 7, exp: 0, mod: 1, want: 0},
		{name: "unit_modulus", base: 123, exp: 45, mod: 1, want: 0},
		{name: "base_larger_than_modulus", base: 1024, exp: 1, mod: 1000, want: 24},
		{name: "zero_base", base: 0, exp: 5, mod: 7, want: 0},
		{name: "demo_encrypt", base: 65, exp: 17, mod: 3233, want: 2790},
		{name: "demo_decrypt", base: 2790, exp: 2753, mod: 3233, want: 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModExpInt64(tt.base, tt.exp, tt.mod)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModExp_MatchesBigExp(t *testing.T) {
	base, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	exp := big.NewInt(65537)
	mod, _ := new(big.Int).SetString("998244353998244353998244353", 10)

	got, err := ModExp(base, exp, mod)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(new(big.Int).Exp(base, exp, mod)))
}

func TestModExp_DoesNotMutateInputs(t *testing.T) {
	base, exp, mod := big.NewInt(5000), big.NewInt(17), big.NewInt(3233)

	_, err := ModExp(base, exp, mod)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), base.Int64())
	assert.Equal(t, int64(17), exp.Int64())
	assert.Equal(t, int64(3233), mod.Int64())
}

func TestModExp_InvalidArguments(t *testing.T) {
	tests := []struct {
		name           string
		base, exp, mod *big.Int
	}{
		{"negative_exponent", big.NewInt(2), big.NewInt(-1), big.NewInt(7)},
		{"zero_modulus", big.NewInt(2), big.NewInt(3), big.NewInt(0)},
		{"negative_modulus", big.NewInt(2), big.NewInt(3), big.NewInt(-7)},
		{"negative_base", big.NewInt(-2), big.NewInt(3), big.NewInt(7)},
		{"nil_operand", nil, big.NewInt(3), big.NewInt(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ModExp(tt.base, tt.exp, tt.mod)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func BenchmarkModExp(b *testing.B) {
	key := DefaultKeyParameters()
	m := big.NewInt(65)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ModExp(m, key.D(), key.N())
	}
}
