package concepts

import (
	"math"
	"unicode/utf8"
)

// MaxPrintableEntropy is log2 of the 95 printable ASCII characters.
var MaxPrintableEntropy = math.Log2(95)

// Entropy returns the Shannon entropy of text in bits per character,
// computed over code-point frequencies.
func Entropy(text string) float64 {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return 0
	}

	freq := make(map[rune]int)
	for _, r := range text {
		freq[r]++
	}

	var h float64
	for _, count := range freq {
		p := float64(count) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// NormalizedEntropy scales Entropy against MaxPrintableEntropy, capped at 1.
func NormalizedEntropy(text string) float64 {
	return math.Min(Entropy(text)/MaxPrintableEntropy, 1)
}

// StrengthLabel grades an entropy value for display.
func StrengthLabel(h float64) string {
	switch {
	case h < 1:
		return "Very Weak"
	case h < 2:
		return "Weak"
	case h < 3:
		return "Moderate"
	case h < 4:
		return "Strong"
	default:
		return "Very Strong"
	}
}
