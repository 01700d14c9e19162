// internal/ui/weapon_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-shatter/internal/config"
	"go-shatter/internal/types"
)

// WeaponButton — кнопка выбора оружия, по клику переключает по кругу.
type WeaponButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.RGBA
	CurrentState   int
}

func NewWeaponButton(x, y, size float32, stateColors []color.RGBA) *WeaponButton {
	return &WeaponButton{
		X:            x,
		Y:            y,
		Size:         size,
		StateColors:  stateColors,
		CurrentState: 0,
	}
}

// Draw рисует значок оружия: точка, три точки веером или большой круг.
func (b *WeaponButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)
	clr := b.StateColors[b.CurrentState%len(b.StateColors)]

	vector.StrokeCircle(screen, b.X, b.Y, size, 1.5, config.ButtonStroke, true)
	switch b.Weapon() {
	case types.WeaponPrecision:
		vector.DrawFilledCircle(screen, b.X, b.Y, size*0.35, clr, true)
	case types.WeaponSpread:
		r := size * 0.22
		for _, dx := range []float32{-0.5, 0, 0.5} {
			vector.DrawFilledCircle(screen, b.X+dx*size, b.Y+float32(math.Abs(float64(dx)))*size*0.4, r, clr, true)
		}
	case types.WeaponExplosive:
		vector.DrawFilledCircle(screen, b.X, b.Y, size*0.75, clr, true)
		vector.StrokeCircle(screen, b.X, b.Y, size*0.45, 1, config.ButtonStroke, true)
	}
}

// IsClicked — круг чуть шире значка, форма у значков разная.
func (b *WeaponButton) IsClicked(mx, my float32) bool {
	dx, dy := mx-b.X, my-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *WeaponButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(types.Weapons)
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}

// SetWeapon синхронизирует кнопку с выбранным оружием.
func (b *WeaponButton) SetWeapon(w types.WeaponKind) {
	for i, k := range types.Weapons {
		if k == w && i != b.CurrentState {
			b.CurrentState = i
			b.LastClickTime = time.Now()
		}
	}
}

func (b *WeaponButton) Weapon() types.WeaponKind {
	return types.Weapons[b.CurrentState%len(types.Weapons)]
}
