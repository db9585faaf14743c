package optics

// Visible spectrum bounds and the default laser wavelength, in nanometers
const (
	MinVisibleWavelength = 380.0
	MaxVisibleWavelength = 700.0
	RedWavelength        = 650.0
)

// WavelengthToRGB approximates the display color of a visible wavelength in
// nanometers. Wavelengths outside the visible band map to black. Based on
// the common piecewise linear fit of the visible spectrum, with intensity
// rolled off toward both ends.
func WavelengthToRGB(wavelength float64) Color {
	var r, g, b float64
	switch {
	case wavelength < MinVisibleWavelength:
		return Color{}
	case wavelength < 440:
		r = -(wavelength - 440) / (440 - 380)
		b = 1
	case wavelength < 490:
		g = (wavelength - 440) / (490 - 440)
		b = 1
	case wavelength < 510:
		g = 1
		b = -(wavelength - 510) / (510 - 490)
	case wavelength < 580:
		r = (wavelength - 510) / (580 - 510)
		g = 1
	case wavelength < 645:
		r = 1
		g = -(wavelength - 645) / (645 - 580)
	case wavelength <= MaxVisibleWavelength:
		r = 1
	default:
		return Color{}
	}

	// Intensity falls off near the edges of visibility
	factor := 1.0
	switch {
	case wavelength < 420:
		factor = 0.3 + 0.7*(wavelength-380)/(420-380)
	case wavelength > 645:
		factor = 0.3 + 0.7*(MaxVisibleWavelength-wavelength)/(MaxVisibleWavelength-645)
	}

	return Color{
		R: uint8(255*r*factor + 0.5),
		G: uint8(255*g*factor + 0.5),
		B: uint8(255*b*factor + 0.5),
	}
}
