// internal/app/layout.go
package app

import (
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/defs"
	"go-shatter/internal/system"
)

// Стили блоков по умолчанию.
var (
	headingStyle = component.StyleSnapshot{
		FontFamily: "Go", FontSize: 30, FontWeight: 700, Color: config.TextColor, LineHeight: 1.25,
	}
	paragraphStyle = component.StyleSnapshot{
		FontFamily: "Go", FontSize: 18, FontWeight: 400, Color: config.TextColor, LineHeight: 1.5,
	}
	quoteStyle = component.StyleSnapshot{
		FontFamily: "Go", FontSize: 18, FontWeight: 400, Color: config.MutedColor, LineHeight: 1.5,
	}
)

const listIndent = 24.0

func blockStyle(b defs.BlockDefinition) component.StyleSnapshot {
	var s component.StyleSnapshot
	switch b.Type {
	case defs.BlockHeading:
		s = headingStyle
	case defs.BlockQuote:
		s = quoteStyle
	default:
		s = paragraphStyle
	}
	if o := b.Style; o != nil {
		if o.FontSize > 0 {
			s.FontSize = o.FontSize
		}
		if o.FontWeight > 0 {
			s.FontWeight = o.FontWeight
		}
		if o.Color.A > 0 {
			s.Color = o.Color
		}
		if o.LineHeight > 0 {
			s.LineHeight = o.LineHeight
		}
	}
	return s
}

// Layout раскладывает страницу сверху вниз: текст, ряд изображений,
// ряд логотипов. Возвращает высоту содержимого.
func (s *Site) Layout(width, height float64) float64 {
	s.width, s.height = width, height
	*s.env.Physics = system.PhysicsFromTuning(s.Tuning, height)
	left := config.PageMarginX
	contentW := width - 2*config.PageMarginX
	if contentW < 100 {
		left, contentW = 10, width-20
	}
	y := config.PageMarginY

	for _, b := range s.blocks {
		x, w := left, contentW
		if b.Role == string(defs.BlockListItem) || b.Role == string(defs.BlockQuote) {
			x, w = left+listIndent, contentW-listIndent
		}
		y += b.Layout(x, y, w, s.measurer) + config.BlockSpacing
	}

	if s.page != nil && len(s.images) > 0 {
		x, rowH := left, 0.0
		for i, img := range s.images {
			def := s.page.Images[i]
			w, h := fitImage(def.Width, def.Height, contentW)
			if x > left && x+w > left+contentW {
				x = left
				y += rowH + config.BlockSpacing
				rowH = 0
			}
			img.SetRect(component.Rect{X: x, Y: y, W: w, H: h})
			x += w + config.BlockSpacing
			rowH = max(rowH, h)
		}
		y += rowH + config.BlockSpacing
	}

	x := left
	for _, l := range s.logos {
		if x > left && x+config.LogoSize > left+contentW {
			x = left
			y += config.LogoSize + config.LogoSpacing
		}
		l.SetRect(component.Rect{X: x, Y: y, W: config.LogoSize, H: config.LogoSize})
		x += config.LogoSize + config.LogoSpacing
	}
	if len(s.logos) > 0 {
		y += config.LogoSize
	}
	return y
}

// fitImage уменьшает изображение до ширины колонки, сохраняя пропорции.
// Нулевые размеры остаются нулевыми: такой блок не разрушается.
func fitImage(w, h, maxW float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	return w, h
}
