package render

import "github.com/df07/go-bending-light/pkg/optics"

// cell holds the running sums for one accumulation position: normalized
// color channels and total ray power.
type cell struct {
	r, g, b   float64
	intensity float64
}

// Accumulator is the per-frame additive pixel map. Positions are on a
// half-pixel grid (coordinates doubled), keyed by a packed 64-bit integer
// so keys are collision-free at any resolution. The map is rebuilt every
// render pass and never carries state across frames.
type Accumulator struct {
	cells map[int64]*cell
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{cells: make(map[int64]*cell)}
}

// Reset clears all accumulated contributions
func (a *Accumulator) Reset() {
	clear(a.cells)
}

// Len returns the number of touched positions
func (a *Accumulator) Len() int {
	return len(a.cells)
}

// packKey packs half-step coordinates into a unique int64. The low word is
// masked so a negative y cannot sign-extend into the x bits.
func packKey(x2, y2 int) int64 {
	return int64(x2)<<32 | int64(uint32(y2))
}

// unpackKey reverses packKey
func unpackKey(key int64) (x2, y2 int) {
	return int(key >> 32), int(int32(key & 0xFFFFFFFF))
}

// Add accumulates one segment visit at a half-step position. Channels are
// scaled by the brightness factor so a single ray cannot saturate a pixel;
// the power fraction is accumulated unscaled.
func (a *Accumulator) Add(x2, y2 int, color optics.Color, powerFraction float64) {
	key := packKey(x2, y2)
	c, ok := a.cells[key]
	if !ok {
		c = &cell{}
		a.cells[key] = c
	}
	c.r += float64(color.R) / 255.0 * BrightnessFactor
	c.g += float64(color.G) / 255.0 * BrightnessFactor
	c.b += float64(color.B) / 255.0 * BrightnessFactor
	c.intensity += powerFraction
}
