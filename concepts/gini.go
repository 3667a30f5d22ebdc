package concepts

// Gini returns the Gini impurity 1 - sum(p_i^2) of a set of class labels.
func Gini(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}

	freq := make(map[int]int)
	for _, l := range labels {
		freq[l]++
	}

	total := float64(len(labels))
	var sumSquares float64
	for _, count := range freq {
		p := float64(count) / total
		sumSquares += p * p
	}
	return 1 - sumSquares
}

// Purity is 1 - Gini.
func Purity(labels []int) float64 {
	return 1 - Gini(labels)
}

func PurityLabel(g float64) string {
	switch {
	case g < 0.1:
		return "Pure"
	case g < 0.3:
		return "Mostly Pure"
	case g < 0.5:
		return "Mixed"
	default:
		return "Highly Impure"
	}
}
