package metric

import "math/bits"

// Hash is a 64-bit fingerprint (e.g. a perceptual hash); distance is the
// Hamming distance, so it only takes the values 0..64.
type Hash uint64

// Distance returns the number of differing bits.
func (h Hash) Distance(other Hash) float64 {
	return float64(bits.OnesCount64(uint64(h ^ other)))
}
