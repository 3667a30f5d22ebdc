package encryption

import (
	"fmt"
	"math/big"
)

var one = big.NewInt(1)

// ModExp computes base^exponent mod modulus by iterative squaring.
// The result is always in [0, modulus). None of the arguments are modified.
func ModExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if base == nil || exponent == nil || modulus == nil {
		return nil, fmt.Errorf("%w: nil operand", ErrInvalidArgument)
	}
	if base.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative base %s", ErrInvalidArgument, base)
	}
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative exponent %s", ErrInvalidArgument, exponent)
	}
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive, got %s", ErrInvalidArgument, modulus)
	}

	b := new(big.Int).Mod(base, modulus)
	exp := new(big.Int).Set(exponent)
	result := new(big.Int).Mod(one, modulus)

	for exp.Sign() > 0 {
		if exp.Bit(0) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		exp.Rsh(exp, 1)
		b.Mul(b, b)
		b.Mod(b, modulus)
	}

	return result, nil
}

// ModExpInt64 is ModExp for small machine-sized operands.
func ModExpInt64(base, exponent, modulus int64) (int64, error) {
	r, err := ModExp(big.NewInt(base), big.NewInt(exponent), big.NewInt(modulus))
	if err != nil {
		return 0, err
	}
	return r.Int64(), nil
}
