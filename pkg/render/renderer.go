package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/optics"
)

const (
	// BrightnessFactor scales each ray's channel contribution so many rays
	// must overlap before a pixel approaches saturation
	BrightnessFactor = 0.017

	// whiteLimit keeps fully saturated pixels from rendering as pure white
	whiteLimit = 0.2

	// channelScale boosts normalized channels before the white limit is applied
	channelScale = 2.0

	// SplatSize is the side of the sub-pixel square a splat covers
	SplatSize = 0.7
)

// Splat is one finished output pixel: a half-step view position and the
// premultiplied-alpha-free RGBA color to composite there.
type Splat struct {
	X, Y  float64
	Color color.RGBA
}

// Renderer composites overlapping light ray segments into splats by
// additive energy accumulation, the way physical light superimposes,
// rather than by alpha-blending transparent layers.
type Renderer struct {
	width, height int
	acc           *Accumulator
}

// NewRenderer creates a renderer for the given output bounds in pixels
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height, acc: NewAccumulator()}
}

// Render walks every segment across the pixel grid, accumulates color and
// intensity additively, and converts the result to alpha-carrying splats.
// The accumulation map is rebuilt on every call; two calls with the same
// input produce identical output. Non-finite segment endpoints fail fast
// with an InvalidArgument error before any accumulation happens.
func (r *Renderer) Render(segments []optics.LightRaySegment, transform geom.ModelViewTransform) ([]Splat, error) {
	for i, seg := range segments {
		if !seg.Tail.IsFinite() || !seg.Tip.IsFinite() {
			return nil, fmt.Errorf("%w: segment %d has non-finite endpoint", geom.ErrInvalidArgument, i)
		}
	}

	r.acc.Reset()
	for _, seg := range segments {
		r.walkSegment(seg, transform)
	}
	return r.finalize(), nil
}

// walkSegment rasterizes one segment into the accumulator
func (r *Renderer) walkSegment(seg optics.LightRaySegment, transform geom.ModelViewTransform) {
	tail := transform.ModelToView(seg.Tail)
	tip := transform.ModelToView(seg.Tip)

	x0, y0 := int(math.Round(tail.X)), int(math.Round(tail.Y))
	x1, y1 := int(math.Round(tip.X)), int(math.Round(tip.Y))

	// Start the walk from an in-bounds endpoint when only one is inside,
	// so the walk does not terminate before reaching the canvas
	if !r.inBounds(x0, y0) && r.inBounds(x1, y1) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	// Bresenham integer line walk, stopping at the first out-of-bounds step
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := step(x0, x1), step(y0, y1)
	errAcc := dx + dy

	x, y := x0, y0
	for {
		if !r.inBounds(x, y) {
			return
		}

		// Deposit at the pixel plus two half-step neighbors to fill the
		// visual gaps an integer walk leaves on diagonal lines
		r.acc.Add(2*x, 2*y, seg.Color, seg.PowerFraction)
		r.acc.Add(2*x+1, 2*y, seg.Color, seg.PowerFraction)
		r.acc.Add(2*x, 2*y+1, seg.Color, seg.PowerFraction)

		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x += sx
		}
		if e2 <= dx {
			errAcc += dx
			y += sy
		}
	}
}

// finalize converts accumulated energy to display colors: channels are
// normalized by the dominant channel, scaled, and capped below pure white;
// opacity follows the square root of the accumulated intensity.
func (r *Renderer) finalize() []Splat {
	splats := make([]Splat, 0, r.acc.Len())
	for key, c := range r.acc.cells {
		m := math.Max(c.r, math.Max(c.g, c.b))
		if m <= 0 {
			m = 1
		}

		alpha := clamp(math.Sqrt(c.intensity*m), 0, 1)
		x2, y2 := unpackKey(key)
		splats = append(splats, Splat{
			X: float64(x2) / 2,
			Y: float64(y2) / 2,
			Color: color.RGBA{
				R: uint8(255 * finalizeChannel(c.r, m)),
				G: uint8(255 * finalizeChannel(c.g, m)),
				B: uint8(255 * finalizeChannel(c.b, m)),
				A: uint8(255 * alpha),
			},
		})
	}

	// Map iteration order is random; sort for deterministic output
	sort.Slice(splats, func(i, j int) bool {
		if splats[i].Y != splats[j].Y {
			return splats[i].Y < splats[j].Y
		}
		return splats[i].X < splats[j].X
	})
	return splats
}

// finalizeChannel normalizes one channel against the dominant channel and
// caps it below pure white
func finalizeChannel(value, m float64) float64 {
	return clamp(value/m*channelScale-whiteLimit, 0, 1-whiteLimit)
}

// Compose alpha-blends splats over a background image. Each splat covers a
// sub-pixel square, so its alpha is weighted by that coverage before the
// standard source-over blend.
func Compose(splats []Splat, img *image.RGBA) {
	coverage := SplatSize * SplatSize
	for _, s := range splats {
		x := int(math.Round(s.X))
		y := int(math.Round(s.Y))
		if !(image.Point{x, y}).In(img.Bounds()) {
			continue
		}

		dst := img.RGBAAt(x, y)
		a := float64(s.Color.A) / 255.0 * coverage
		img.SetRGBA(x, y, color.RGBA{
			R: blend(s.Color.R, dst.R, a),
			G: blend(s.Color.G, dst.G, a),
			B: blend(s.Color.B, dst.B, a),
			A: 255,
		})
	}
}

// blend is one channel of a source-over composite
func blend(src, dst uint8, alpha float64) uint8 {
	return uint8(float64(src)*alpha + float64(dst)*(1-alpha) + 0.5)
}

func (r *Renderer) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
