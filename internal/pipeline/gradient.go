package pipeline

import (
	"fmt"
	"math/rand/v2"
)

// RandomColor returns an HSL color with saturation in [50,90]% and
// lightness in [50,80]%, readable under white cover text.
func RandomColor(r *rand.Rand) string {
	h := r.IntN(360)
	s := 50 + r.IntN(41)
	l := 50 + r.IntN(31)
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l)
}

// RandomGradient returns a 135-degree linear gradient of two random colors.
func RandomGradient(r *rand.Rand) string {
	c1 := RandomColor(r)
	c2 := RandomColor(r)
	return fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", c1, c2)
}

// NewRand returns a deterministic source when seed is non-zero, and a
// randomly seeded one otherwise.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
