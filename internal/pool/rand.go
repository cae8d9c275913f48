package pool

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// SeedPhrase combines the user seed with the build parameters so that changing any of
// them produces a different, but still reproducible, bank
func SeedPhrase(seed, startDate string, days, perDay int) string {
	return fmt.Sprintf("%s:%s:%d:%d", seed, startDate, days, perDay)
}

// NewRand returns a PCG generator seeded from the SHA-256 digest of phrase
func NewRand(phrase string) *rand.Rand {
	sum := sha256.Sum256([]byte(phrase))
	return rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(sum[0:8]),
		binary.BigEndian.Uint64(sum[8:16]),
	))
}

// Shuffle permutes items in place
func Shuffle[T any](rnd *rand.Rand, items []T) {
	rnd.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
