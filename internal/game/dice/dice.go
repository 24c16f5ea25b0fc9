// Package dice provides the randomness abstraction used by enemy behavior.
package dice

// Source is the randomness provider for behavior rolls.
// Implementations must return values in [0, n) for n > 0.
type Source interface {
	Intn(n int) int
}

// Between returns a value in the inclusive range [lo, hi].
//
// Precondition: src must be non-nil; hi >= lo.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}

// Sign returns -1 or +1 with equal probability.
//
// Precondition: src must be non-nil.
func Sign(src Source) float64 {
	if src.Intn(2) == 0 {
		return -1
	}
	return 1
}
