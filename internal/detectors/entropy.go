package detectors

import (
	"math"
	"unicode/utf8"
)

// Default policy values for the entropy gate.
const (
	DefaultMinLength = 24
	DefaultThreshold = 4.2
)

// Entropy returns the Shannon entropy of s in bits per character. The
// probability of each distinct rune is its count over the rune length of s.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}
	count := map[rune]int{}
	for _, r := range s {
		count[r]++
	}
	H := 0.0
	n := float64(utf8.RuneCountInString(s))
	for _, c := range count {
		p := float64(c) / n
		H += -p * math.Log2(p)
	}
	return H
}

// Flagged reports whether token passes the length gate (bytes) and scores
// strictly above threshold. The computed entropy is returned either way.
func Flagged(token string, minLength int, threshold float64) (bool, float64) {
	if len(token) < minLength {
		return false, 0
	}
	e := Entropy(token)
	return e > threshold, e
}
