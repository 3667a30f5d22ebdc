package concepts

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidProbability = errors.New("concepts: probability must be in [0, 1]")

// Spam-filter defaults shown on the quest page.
const (
	DefaultPrior         = 0.45
	DefaultLikelihood    = 0.90
	DefaultFalsePositive = 0.01
)

// BayesResult is a posterior with the evidence term that produced it.
type BayesResult struct {
	Prior         float64 `json:"prior"`
	Likelihood    float64 `json:"likelihood"`
	FalsePositive float64 `json:"false_positive"`
	Evidence      float64 `json:"evidence"`
	Posterior     float64 `json:"posterior"`
	Verdict       string  `json:"verdict"`
}

// Posterior returns P(H|E) = P(E|H)P(H) / P(E), where
// P(E) = P(E|H)P(H) + P(E|not H)(1-P(H)). Zero evidence yields 0.
func Posterior(prior, likelihood, falsePositive float64) (BayesResult, error) {
	for name, v := range map[string]float64{
		"prior":          prior,
		"likelihood":     likelihood,
		"false_positive": falsePositive,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return BayesResult{}, fmt.Errorf("%w: %s=%v", ErrInvalidProbability, name, v)
		}
	}

	res := BayesResult{
		Prior:         prior,
		Likelihood:    likelihood,
		FalsePositive: falsePositive,
		Evidence:      likelihood*prior + falsePositive*(1-prior),
	}
	if res.Evidence > 0 {
		res.Posterior = likelihood * prior / res.Evidence
	}
	res.Verdict = VerdictLabel(res.Posterior)
	return res, nil
}

// VerdictLabel reads a spam posterior the way the demo does.
func VerdictLabel(posterior float64) string {
	switch {
	case posterior > 0.9:
		return "Almost certainly spam."
	case posterior > 0.7:
		return "Likely spam."
	case posterior > 0.5:
		return "Possibly spam."
	default:
		return "Probably not spam."
	}
}
