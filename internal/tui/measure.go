package tui

import (
	"unicode/utf8"

	"go-shatter/internal/component"
)

// Размер ячейки терминала в пикселях страницы. Вся геометрия сайта
// остаётся в пикселях, терминал лишь округляет её до ячеек.
const (
	CellW = 10.0
	CellH = 24.0
)

// CellMeasurer меряет текст ячейками: один символ — одна ячейка.
type CellMeasurer struct{}

func (CellMeasurer) Measure(text string, style component.StyleSnapshot) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * CellW, CellH
}

// ToCell переводит пиксели страницы в ячейку.
func ToCell(x, y float64) (int, int) {
	return int(x / CellW), int(y / CellH)
}

// ToPixel — центр ячейки в пикселях страницы.
func ToPixel(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellW, (float64(row) + 0.5) * CellH
}
