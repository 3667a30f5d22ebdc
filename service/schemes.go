package service

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"quest-demos/encryption"
)

// CompareSchemes runs the same pair of operands through the toy RSA key
// (multiplicative) and a Paillier key (additive). The Paillier key is
// generated on first use.
func (s *DemoService) CompareSchemes(a, b int64) (results []*encryption.BenchmarkResult, err error) {
	done := s.metrics.Track(OpCompareSchemes)
	defer func() { done(err) }()

	if a < 0 || b < 0 {
		return nil, fmt.Errorf("%w: operands must be non-negative", encryption.ErrInvalidArgument)
	}

	schemes, err := s.homomorphicSchemes()
	if err != nil {
		return nil, err
	}

	for _, scheme := range schemes {
		res, err := encryption.Benchmark(scheme, big.NewInt(a), big.NewInt(b))
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *DemoService) homomorphicSchemes() ([]encryption.HomomorphicScheme, error) {
	s.schemesOnce.Do(func() {
		paillierScheme, err := encryption.NewPaillierAdapter(s.opts.PaillierKeyBits)
		if err != nil {
			s.schemesErr = err
			return
		}
		s.logger.Info("generated paillier key", zap.Int("bits", s.opts.PaillierKeyBits))
		s.schemes = []encryption.HomomorphicScheme{
			encryption.NewToyRSAAdapter(s.key),
			paillierScheme,
		}
	})
	return s.schemes, s.schemesErr
}
