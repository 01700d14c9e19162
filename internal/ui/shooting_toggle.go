// internal/ui/shooting_toggle.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-shatter/internal/config"
)

// ShootingToggle — прицел в углу: включает и выключает режим стрельбы.
type ShootingToggle struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	IsOn           bool
	OnColor        color.Color
	OffColor       color.Color
}

func NewShootingToggle(x, y, size float32, onColor, offColor color.Color) *ShootingToggle {
	return &ShootingToggle{
		X:        x,
		Y:        y,
		Size:     size,
		OnColor:  onColor,
		OffColor: offColor,
		IsOn:     false,
	}
}

func (b *ShootingToggle) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	r := b.Size * float32(scale)

	clr := b.OffColor
	if b.IsOn {
		clr = b.OnColor
	}
	vector.DrawFilledCircle(screen, b.X, b.Y, r, clr, true)
	vector.StrokeCircle(screen, b.X, b.Y, r, 1.5, config.ButtonStroke, true)
	// Перекрестие
	vector.StrokeLine(screen, b.X-r*1.4, b.Y, b.X-r*0.4, b.Y, 1.5, config.ButtonStroke, true)
	vector.StrokeLine(screen, b.X+r*0.4, b.Y, b.X+r*1.4, b.Y, 1.5, config.ButtonStroke, true)
	vector.StrokeLine(screen, b.X, b.Y-r*1.4, b.X, b.Y-r*0.4, 1.5, config.ButtonStroke, true)
	vector.StrokeLine(screen, b.X, b.Y+r*0.4, b.X, b.Y+r*1.4, 1.5, config.ButtonStroke, true)
}

func (b *ShootingToggle) IsClicked(mx, my float32) bool {
	dx, dy := mx-b.X, my-b.Y
	r := b.Size * 1.4
	return dx*dx+dy*dy <= r*r
}

func (b *ShootingToggle) Toggle() {
	b.IsOn = !b.IsOn
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}

func (b *ShootingToggle) SetOn(on bool) {
	b.IsOn = on
}
