package optics

import (
	"math"

	"github.com/df07/go-bending-light/pkg/geom"
)

// Reflect calculates the mirror reflection of a unit direction v off a
// surface with unit normal n: r = v - 2*dot(v,n)*n
func Reflect(v, n geom.Vec2) geom.Vec2 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends a unit direction through a boundary using Snell's law.
// The normal must oppose the incoming direction and etaRatio is n1/n2.
// Returns false when the angle exceeds the critical angle, i.e. total
// internal reflection.
func Refract(uv, n geom.Vec2, etaRatio float64) (geom.Vec2, bool) {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if etaRatio*sinTheta > 1.0 {
		return geom.Vec2{}, false
	}

	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaRatio)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's
// approximation. cosine is the cosine of the incident angle and etaRatio
// is n1/n2.
func Reflectance(cosine, etaRatio float64) float64 {
	r0 := (1 - etaRatio) / (1 + etaRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
