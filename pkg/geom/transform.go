package geom

// ModelViewTransform maps between simulation (model) coordinates and view
// pixel coordinates. Model Y points up, view Y points down, so the Y axis
// is flipped. ModelToView and ViewToModel round-trip within floating
// tolerance for any finite input.
type ModelViewTransform struct {
	Scale      float64 // view pixels per model unit
	ViewOrigin Vec2    // view position of the model origin
}

// NewModelViewTransform creates a transform with the given scale that places
// the model origin at the given view position.
func NewModelViewTransform(scale float64, viewOrigin Vec2) ModelViewTransform {
	return ModelViewTransform{Scale: scale, ViewOrigin: viewOrigin}
}

// FitTransform creates a transform that centers a model region of the given
// half-extent inside a view of the given pixel dimensions.
func FitTransform(modelHalfExtent float64, viewWidth, viewHeight int) ModelViewTransform {
	smaller := viewWidth
	if viewHeight < smaller {
		smaller = viewHeight
	}
	return ModelViewTransform{
		Scale:      float64(smaller) / (2 * modelHalfExtent),
		ViewOrigin: NewVec2(float64(viewWidth)/2, float64(viewHeight)/2),
	}
}

// ModelToView maps a model point to view coordinates
func (t ModelViewTransform) ModelToView(p Vec2) Vec2 {
	return Vec2{
		X: t.ViewOrigin.X + p.X*t.Scale,
		Y: t.ViewOrigin.Y - p.Y*t.Scale,
	}
}

// ViewToModel maps a view point to model coordinates
func (t ModelViewTransform) ViewToModel(p Vec2) Vec2 {
	return Vec2{
		X: (p.X - t.ViewOrigin.X) / t.Scale,
		Y: (t.ViewOrigin.Y - p.Y) / t.Scale,
	}
}

// ModelToViewDelta maps a model displacement to a view displacement
func (t ModelViewTransform) ModelToViewDelta(d Vec2) Vec2 {
	return Vec2{X: d.X * t.Scale, Y: -d.Y * t.Scale}
}

// ViewToModelDelta maps a view displacement to a model displacement
func (t ModelViewTransform) ViewToModelDelta(d Vec2) Vec2 {
	return Vec2{X: d.X / t.Scale, Y: -d.Y / t.Scale}
}
