package assets

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Pixelate уменьшает изображение до блоков block×block и растягивает
// обратно без сглаживания.
func Pixelate(src image.Image, block int) *image.RGBA {
	b := src.Bounds()
	if block < 1 {
		block = 1
	}
	sw := max(1, b.Dx()/block)
	sh := max(1, b.Dy()/block)

	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, b, draw.Src, nil)

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)
	return out
}

// Crack — отрезок трещины в долях размера изображения.
type Crack struct {
	X0, Y0, X1, Y1 float64
}

// Cracks строит ломаные лучи из точки удара. seed делает рисунок
// одинаковым для одного изображения от кадра к кадру.
func Cracks(cx, cy float64, rays, segments int, seed uint32) []Crack {
	var out []Crack
	s := seed | 1
	next := func() float64 {
		// xorshift32
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		return float64(s) / math.MaxUint32
	}
	for r := 0; r < rays; r++ {
		angle := 2*math.Pi*float64(r)/float64(rays) + (next()-0.5)*0.6
		x, y := cx, cy
		for i := 0; i < segments; i++ {
			length := 0.08 + next()*0.12
			angle += (next() - 0.5) * 0.5
			nx := x + math.Cos(angle)*length
			ny := y + math.Sin(angle)*length
			out = append(out, Crack{X0: x, Y0: y, X1: nx, Y1: ny})
			x, y = nx, ny
		}
	}
	return out
}

// Fit масштабирует изображение ровно в w×h.
func Fit(src image.Image, w, h int) *image.RGBA {
	w, h = max(1, w), max(1, h)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	return out
}
