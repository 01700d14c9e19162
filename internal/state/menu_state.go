// internal/state/menu_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"go-shatter/internal/config"
	"go-shatter/pkg/render"
)

var helpLines = []string{
	"S            shooting mode on / off",
	"Click        fire at the page",
	"Tab, 1-3     precision / spread / explosive",
	"R            repair everything",
	"P, F9        pause",
}

// MenuState — заставка с подсказкой по клавишам.
type MenuState struct {
	sm    *StateMachine
	fonts *render.Fonts
	next  State
}

func NewMenuState(sm *StateMachine, fonts *render.Fonts, next State) *MenuState {
	return &MenuState{sm: sm, fonts: fonts, next: next}
}

func (m *MenuState) Enter() {
	// Ничего не делаем при входе
}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.sm.SetState(m.next)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	title := m.fonts.Face(48, true)
	body := m.fonts.Face(18, false)

	y := config.ScreenHeight / 3
	text.Draw(screen, "shatter", title, config.PageMarginX, y, config.AccentColor)
	y += 60
	for _, line := range helpLines {
		text.Draw(screen, line, body, config.PageMarginX, y, config.TextColor)
		y += 28
	}
	text.Draw(screen, "Press Space to start", body, config.PageMarginX, y+28, config.MutedColor)
}

func (m *MenuState) Exit() {
	// Ничего не делаем при выходе
}
