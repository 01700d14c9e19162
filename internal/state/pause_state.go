// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-shatter/internal/config"
	"go-shatter/pkg/render"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ Overlay = (*PauseState)(nil)

// Pausable — то, что замораживается на время паузы.
type Pausable interface {
	SetPaused(bool)
}

// PauseState замораживает осколки и таймеры и рисует затемнение
// поверх страницы. Кладётся на стек через Push.
type PauseState struct {
	stateMachine *StateMachine
	target       Pausable
	fonts        *render.Fonts
}

func NewPauseState(sm *StateMachine, target Pausable, fonts *render.Fonts) *PauseState {
	return &PauseState{
		stateMachine: sm,
		target:       target,
		fonts:        fonts,
	}
}

func (s *PauseState) IsOverlay() bool { return true }

func (s *PauseState) Enter() {
	s.target.SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.stateMachine.Pop()
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, render.WithAlpha(render.DarkenColor(config.BackgroundColor), 200), false)

	face := s.fonts.Face(40, true)
	pauseText := "PAUSED"
	bounds := text.BoundString(face, pauseText)
	text.Draw(screen, pauseText, face, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, color.White)
}

func (s *PauseState) Exit() {
	s.target.SetPaused(false)
}
