// Package rng provides the seeded multiply-with-carry generator that drives
// tree growth. The same seed yields the same stream on every platform, so a
// tree can be regenerated exactly from its seed.
package rng

const (
	wSeedOffset = 123456789
	zSeedOffset = 987654321
)

// RNG is a pair of 16-bit multiply-with-carry generators combined into one
// 32-bit output. It is not safe for concurrent use.
type RNG struct {
	w uint32
	z uint32
}

// New returns a generator seeded with seed. Negative seeds are valid.
func New(seed int64) *RNG {
	return &RNG{
		w: uint32(wSeedOffset + seed),
		z: uint32(zSeedOffset - seed),
	}
}

// Uint32 advances the generator and returns the next raw 32-bit value.
func (r *RNG) Uint32() uint32 {
	r.z = 36969*(r.z&0xFFFF) + (r.z >> 16)
	r.w = 18000*(r.w&0xFFFF) + (r.w >> 16)
	return (r.z << 16) + (r.w & 0xFFFF)
}

// Next returns a value in [min, max).
func (r *RNG) Next(min, max float64) float64 {
	f := float64(r.Uint32()) / 4294967296
	// The conversion forbids fusing into an FMA, which would change the low bits on some CPUs.
	return float64((max-min)*f) + min
}
