package optics

// Medium describes an optical material via a two-term Cauchy dispersion
// relation n(λ) = A + B/λ². B is in nm², so shorter wavelengths bend more,
// which is what fans white light into a spectrum inside a prism.
type Medium struct {
	Name string
	A    float64 // base refractive index
	B    float64 // dispersion coefficient, nm²
}

// Standard media, with Cauchy coefficients for the visible band
var (
	Air     = Medium{Name: "air", A: 1.000293, B: 0}
	Water   = Medium{Name: "water", A: 1.3199, B: 6878}
	Glass   = Medium{Name: "glass", A: 1.5046, B: 4200}
	Diamond = Medium{Name: "diamond", A: 2.3818, B: 12110}
)

// IndexAt returns the refractive index at a wavelength in nanometers
func (m Medium) IndexAt(wavelength float64) float64 {
	return m.A + m.B/(wavelength*wavelength)
}
