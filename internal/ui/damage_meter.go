// internal/ui/damage_meter.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DamageMeter — полоса разрушенного текста и квадратики разбитых картинок.
type DamageMeter struct {
	X, Y float32
}

const (
	barWidth   = 160
	barHeight  = 12
	cellWidth  = 16
	cellHeight = 12
	cellGap    = 9
	maxCells   = 6
	border     = 1
)

var (
	meterFill   = color.RGBA{255, 94, 58, 220}
	meterBorder = color.White
)

func NewDamageMeter(x, y float32) *DamageMeter {
	return &DamageMeter{X: x, Y: y}
}

// Draw рисует долю разрушенных слов и число разбитых изображений.
func (m *DamageMeter) Draw(screen *ebiten.Image, wordRatio float64, images int) {
	vector.StrokeRect(screen, m.X, m.Y, barWidth, barHeight, border, meterBorder, true)
	wordRatio = min(max(wordRatio, 0), 1)
	fill := float32(float64(barWidth-border*2) * wordRatio)
	if fill > 0 {
		vector.DrawFilledRect(screen, m.X+border, m.Y+border, fill, barHeight-border*2, meterFill, true)
	}

	cellY := m.Y + barHeight + 10
	for j := 0; j < maxCells; j++ {
		cellX := m.X + float32(j)*(cellWidth+cellGap)
		vector.StrokeRect(screen, cellX, cellY, cellWidth, cellHeight, border, meterBorder, true)
		if j < images {
			vector.DrawFilledRect(screen, cellX+border, cellY+border, cellWidth-border*2, cellHeight-border*2, meterFill, true)
		}
	}
}
