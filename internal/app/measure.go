// internal/app/measure.go
package app

import (
	"unicode/utf8"

	"go-shatter/internal/component"
)

// ApproxMeasurer оценивает ширину текста без шрифта: средняя ширина
// символа — доля кегля. Годится для тестов и как запасной вариант.
type ApproxMeasurer struct {
	// CharWidth — ширина символа в долях кегля, 0 — 0.55.
	CharWidth float64
}

func (m ApproxMeasurer) Measure(text string, style component.StyleSnapshot) (float64, float64) {
	k := m.CharWidth
	if k <= 0 {
		k = 0.55
	}
	return float64(utf8.RuneCountInString(text)) * style.FontSize * k, style.FontSize
}
