package scene

import (
	"github.com/fogleman/gg"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/shape"
)

// Draw strokes the prism outlines and the laser marker into a drawing
// context, so snapshot images show the geometry the light is bending
// through. Light itself is composited separately by the render package.
func Draw(dc *gg.Context, s *Scene, tf geom.ModelViewTransform) {
	dc.SetLineWidth(1.5)
	dc.SetRGBA(0.85, 0.88, 0.95, 0.9)

	for _, prism := range s.Prisms() {
		outlineShape(dc, prism.Shape, tf)
		dc.Stroke()
	}

	drawLaser(dc, s.Laser, tf)
}

// outlineShape traces one shape's boundary into the current path
func outlineShape(dc *gg.Context, sh shape.Shape, tf geom.ModelViewTransform) {
	switch v := sh.(type) {
	case *shape.Circle:
		c := tf.ModelToView(v.Center)
		dc.DrawCircle(c.X, c.Y, v.Radius*tf.Scale)

	case *shape.SemiCircle:
		center := tf.ModelToView(v.Points[0].Add(v.Points[1]).Multiply(0.5))
		// The arc runs counterclockwise in model space from Points[1]
		// halfway around; view angles are negated because view Y points down
		start := v.Points[1].Subtract(v.Points[0]).Angle()
		dc.NewSubPath()
		dc.DrawArc(center.X, center.Y, v.Radius*tf.Scale, -start, -start-gg.Radians(180))
		dc.ClosePath()

	case *shape.Polygon:
		for i, p := range v.Points {
			vp := tf.ModelToView(p)
			if i == 0 {
				dc.MoveTo(vp.X, vp.Y)
			} else {
				dc.LineTo(vp.X, vp.Y)
			}
		}
		dc.ClosePath()
	}
}

// drawLaser marks the source position and beam direction
func drawLaser(dc *gg.Context, laser Laser, tf geom.ModelViewTransform) {
	pos := tf.ModelToView(laser.Position)
	tick := tf.ModelToViewDelta(laser.Direction().Multiply(0.25))

	dc.SetRGBA(0.95, 0.3, 0.3, 1)
	dc.DrawCircle(pos.X, pos.Y, 4)
	dc.Fill()
	dc.DrawLine(pos.X, pos.Y, pos.X+tick.X, pos.Y+tick.Y)
	dc.Stroke()
}
