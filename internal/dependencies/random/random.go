package random

import (
	"crypto/rand"
	"math/big"
)

// Random abstracts randomness so PIN generation is controllable in tests
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String draws a random string of the given length from the alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random on crypto/rand. PINs are guessable join
// credentials, so they are not drawn from a seeded PRNG.
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails if the platform source is broken
		return 0
	}
	return int(result.Int64())
}

// String draws a random string of the given length from the alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}
