package charts

import "gonum.org/v1/plot/vg"

// PixelsPerInch is the screen resolution chart sizes are given in.
const PixelsPerInch = 96

// PixelsToLength converts a size in pixels at 96 DPI to a vg length.
func PixelsToLength(px int) vg.Length {
	return vg.Length(px) * vg.Inch / PixelsPerInch
}
