package render

import "image/color"

// PageColors holds the colors needed to draw the page and its debris.
type PageColors struct {
	BackgroundColor color.RGBA
	CrackColor      color.RGBA
	HoleColor       color.RGBA
	HoleRimColor    color.RGBA
	LabelColor      color.RGBA
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// WithAlpha returns the color with a new alpha, keeping premultiplied channels in range.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	scale := float64(a) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
		A: a,
	}
}
