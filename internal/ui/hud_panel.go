// internal/ui/hud_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-shatter/internal/app"
	"go-shatter/internal/config"
	"go-shatter/internal/event"
	"go-shatter/internal/types"
	"go-shatter/internal/utils"
)

const (
	panelHeight    = 96
	panelMargin    = 5
	animationSpeed = 8.0
	lineHeight     = 20
	columnSpacing  = 220
)

// HUDPanel — панель внизу экрана со счётчиками разрушений и кнопкой
// починки. Выезжает, пока включён режим стрельбы.
type HUDPanel struct {
	IsVisible       bool
	fontFace        font.Face
	titleFontFace   font.Face
	currentY        float64
	targetY         float64
	RepairButton    *Button
	meter           *DamageMeter
	eventDispatcher *event.Dispatcher
}

// NewHUDPanel creates the panel hidden below the screen.
func NewHUDPanel(face, titleFace font.Face, dispatcher *event.Dispatcher) *HUDPanel {
	p := &HUDPanel{
		fontFace:        face,
		titleFontFace:   titleFace,
		currentY:        config.ScreenHeight,
		targetY:         config.ScreenHeight,
		eventDispatcher: dispatcher,
		meter:           NewDamageMeter(0, 0),
	}
	p.RepairButton = NewButton(image.Rectangle{}, "Repair all", face, config.RepairColor)
	return p
}

func (p *HUDPanel) Show() {
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *HUDPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Update двигает панель к цели.
func (p *HUDPanel) Update() {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	if math.Abs(diff) < animationSpeed {
		p.currentY = p.targetY
	} else if diff > 0 {
		p.currentY += animationSpeed
	} else {
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
	}
}

// Contains — попадает ли точка в панель.
func (p *HUDPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// HandleClick обрабатывает клик по панели. Кнопка починки отправляет
// запрос событием, панель не знает, кто его выполнит.
func (p *HUDPanel) HandleClick(x, y int) bool {
	if !p.Contains(x, y) {
		return false
	}
	if p.RepairButton.IsClicked(x, y) {
		p.eventDispatcher.Dispatch(&event.Event{Type: event.RepairRequested})
	}
	return true
}

func (p *HUDPanel) Draw(screen *ebiten.Image, stats app.Stats, totalWords int, weapon types.WeaponKind) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
	bgColor := color.RGBA{R: 25, G: 25, B: 35, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, config.AccentColor, true)

	x := panelRect.Min.X + 15
	y := panelRect.Min.Y + 22
	text.Draw(screen, "Damage report", p.titleFontFace, x, y, config.TextColor)
	y += lineHeight + 4
	text.Draw(screen, fmt.Sprintf("Shots: %d", stats.Shots), p.fontFace, x, y, config.TextColor)
	text.Draw(screen, fmt.Sprintf("Words: %d / %d", stats.Words, totalWords), p.fontFace, x+columnSpacing, y, config.TextColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Weapon: %s", weapon), p.fontFace, x, y, config.TextColor)
	text.Draw(screen, fmt.Sprintf("Images: %d  Debris: %d", stats.Images, stats.Fragments), p.fontFace, x+columnSpacing, y, config.TextColor)

	p.meter.X = float32(x + 2*columnSpacing + 20)
	p.meter.Y = float32(panelRect.Min.Y + 30)
	p.meter.Draw(screen, utils.Progress(float64(stats.Words), float64(totalWords)), stats.Images)

	btnWidth, btnHeight := 150, 40
	p.RepairButton.Rect = image.Rect(
		panelRect.Max.X-btnWidth-20,
		panelRect.Min.Y+(panelRect.Dy()-btnHeight)/2,
		panelRect.Max.X-20,
		panelRect.Min.Y+(panelRect.Dy()+btnHeight)/2,
	)
	p.RepairButton.Draw(screen)
}
