package schedule

import (
	crand "crypto/rand"
	"math/rand/v2"
	"slices"

	"github.com/derekprior/fixtures/internal/strategy"
)

// MatchesPerWeekend is the fixed number of matches grouped into a weekend.
const MatchesPerWeekend = 2

// Weekend is a pair of matches played together.
type Weekend struct {
	Number  int // 1-based
	Matches [MatchesPerWeekend]strategy.Match
}

// NewRand returns a random source for Shuffle. A nil seed draws the key
// from the system entropy source, so consecutive runs differ.
func NewRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	var key [32]byte
	crand.Read(key[:])
	return rand.New(rand.NewChaCha8(key))
}

// Shuffle permutes matches in place using a Fisher-Yates shuffle.
func Shuffle(matches []strategy.Match, rng *rand.Rand) {
	rng.Shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})
}

// SortByLeg moves every leg 1 match ahead of every leg 2 match, keeping
// the existing order inside each leg.
func SortByLeg(matches []strategy.Match) {
	slices.SortStableFunc(matches, func(a, b strategy.Match) int {
		return a.Leg - b.Leg
	})
}

// Pack groups consecutive matches into weekends. When the number of
// matches is odd the last one has no partner; it is returned as dropped
// and left out of the weekends.
func Pack(matches []strategy.Match) (weekends []Weekend, dropped *strategy.Match) {
	n := len(matches) / MatchesPerWeekend
	weekends = make([]Weekend, 0, n)
	for k := 0; k < n; k++ {
		w := Weekend{Number: k + 1}
		copy(w.Matches[:], matches[k*MatchesPerWeekend:(k+1)*MatchesPerWeekend])
		weekends = append(weekends, w)
	}
	if rem := len(matches) % MatchesPerWeekend; rem != 0 {
		last := matches[len(matches)-1]
		dropped = &last
	}
	return weekends, dropped
}
