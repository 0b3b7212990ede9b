package board

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

// Source is the random source used for dealing, reshuffling and hints.
// IntN returns a uniform integer in [0, n); n is always positive.
type Source interface {
	IntN(n int) int
}

// cryptoSource draws from the operating system; used for real play.
type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// fall back to math/rand/v2
		return rand.IntN(n)
	}
	return int(v.Int64())
}

// NewCryptoSource returns a non-reproducible source.
func NewCryptoSource() Source { return cryptoSource{} }

// seededSource is reproducible (tests, replays, --seed).
type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a deterministic source for seed.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) IntN(n int) int { return s.r.IntN(n) }
