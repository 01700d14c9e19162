package render

import (
	"log"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"go-shatter/internal/component"
)

type faceKey struct {
	size int
	bold bool
}

// Fonts хранит начертания Go Regular / Go Bold, созданные по размеру.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

// NewFonts разбирает встроенные шрифты.
func NewFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &Fonts{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

// MustFonts — NewFonts, падающий при ошибке. Шрифты встроены, так что
// ошибка означает сломанную сборку.
func MustFonts() *Fonts {
	f, err := NewFonts()
	if err != nil {
		log.Fatal(err)
	}
	return f
}

// Face возвращает начертание для кегля и жирности.
func (f *Fonts) Face(size float64, bold bool) font.Face {
	key := faceKey{size: int(math.Round(size)), bold: bold}
	if key.size < 1 {
		key.size = 1
	}
	if face, ok := f.faces[key]; ok {
		return face
	}
	tt := f.regular
	if bold {
		tt = f.bold
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    float64(key.size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Fatal(err)
	}
	f.faces[key] = face
	return face
}

// StyleFace — начертание для стиля слова.
func (f *Fonts) StyleFace(style component.StyleSnapshot) font.Face {
	return f.Face(style.FontSize, style.FontWeight >= 600)
}

// Measure реализует unit.Measurer по настоящим метрикам шрифта.
func (f *Fonts) Measure(text string, style component.StyleSnapshot) (float64, float64) {
	face := f.StyleFace(style)
	w := font.MeasureString(face, text)
	m := face.Metrics()
	return float64(w) / 64, float64(m.Ascent+m.Descent) / 64
}

// Ascent — расстояние от верха строки до базовой линии.
func (f *Fonts) Ascent(style component.StyleSnapshot) float64 {
	return float64(f.StyleFace(style).Metrics().Ascent) / 64
}

// Close освобождает начертания.
func (f *Fonts) Close() {
	for k, face := range f.faces {
		face.Close()
		delete(f.faces, k)
	}
}
