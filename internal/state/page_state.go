// internal/state/page_state.go
package state

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-shatter/internal/app"
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/event"
	"go-shatter/internal/types"
	"go-shatter/internal/ui"
	"go-shatter/pkg/render"
)

// PageState — страница: просмотр или стрельба по ней.
type PageState struct {
	sm            *StateMachine
	site          *app.Site
	renderer      *render.PageRenderer
	fonts         *render.Fonts
	weaponButton  *ui.WeaponButton
	shooting      *ui.ShootingToggle
	hud           *ui.HUDPanel
	sound         *ui.ShotSound
	subs          []*event.Subscription
	totalWords    int
	lastClickTime time.Time
}

func NewPageState(sm *StateMachine, site *app.Site, renderer *render.PageRenderer, fonts *render.Fonts, sound *ui.ShotSound) *PageState {
	ps := &PageState{
		sm:       sm,
		site:     site,
		renderer: renderer,
		fonts:    fonts,
		weaponButton: ui.NewWeaponButton(
			float32(config.ScreenWidth-config.ButtonOffsetX*2-10),
			config.ButtonY,
			config.ButtonSize,
			config.WeaponColors,
		),
		shooting: ui.NewShootingToggle(
			float32(config.ScreenWidth-config.ButtonOffsetX),
			config.ButtonY,
			config.ButtonSize,
			config.ShootingOnColor,
			config.ShootingOffColor,
		),
		hud:   ui.NewHUDPanel(fonts.Face(14, false), fonts.Face(18, true), site.EventDispatcher),
		sound: sound,
	}
	for _, b := range site.TextBlocks() {
		ps.totalWords += len(b.Words())
	}
	ps.syncUI()
	return ps
}

func (p *PageState) Enter() {
	d := p.site.EventDispatcher
	p.subs = append(p.subs,
		d.SubscribeFunc(event.ModeChanged, func(*event.Event) { p.syncUI() }),
		d.SubscribeFunc(event.WeaponChanged, func(*event.Event) { p.syncUI() }),
	)
	p.syncUI()
}

func (p *PageState) Update(deltaTime float64) {
	p.hud.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		p.sm.Push(NewPauseState(p.sm, p.site, p.fonts))
		return
	}
	p.handleKeys()

	p.site.Update(time.Duration(deltaTime * float64(time.Second)))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if p.isClickOnUI(x, y) {
			p.handleUIClick(x, y)
		} else if time.Since(p.lastClickTime) >= config.ClickCooldown*time.Millisecond {
			p.shoot(x, y)
		}
		p.lastClickTime = time.Now()
	}
}

func (p *PageState) Draw(screen *ebiten.Image) {
	p.renderer.Draw(screen, p.site)
	p.weaponButton.Draw(screen)
	p.shooting.Draw(screen)
	p.hud.Draw(screen, p.site.Stats(), p.totalWords, p.site.Weapon())
}

func (p *PageState) Exit() {
	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil
}

// --- Private Helper Functions ---

func (p *PageState) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		p.site.ToggleMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		p.site.CycleWeapon()
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(key) {
			p.site.SetWeapon(types.Weapons[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.site.EventDispatcher.Dispatch(&event.Event{Type: event.RepairRequested})
	}
}

func (p *PageState) isClickOnUI(x, y int) bool {
	mx, my := float32(x), float32(y)
	return p.weaponButton.IsClicked(mx, my) || p.shooting.IsClicked(mx, my) || p.hud.Contains(x, y)
}

func (p *PageState) handleUIClick(x, y int) {
	mx, my := float32(x), float32(y)
	switch {
	case p.weaponButton.IsClicked(mx, my):
		p.site.CycleWeapon()
	case p.shooting.IsClicked(mx, my):
		p.site.ToggleMode()
	default:
		p.hud.HandleClick(x, y)
	}
}

func (p *PageState) shoot(x, y int) {
	if p.site.Shoot(float64(x), float64(y)) && p.sound != nil {
		p.sound.Play(p.site.Weapon())
	}
}

// syncUI приводит кнопки и панель к состоянию страницы.
func (p *PageState) syncUI() {
	on := p.site.Mode() == component.ShootingMode
	if p.shooting.IsOn != on {
		p.shooting.Toggle()
	}
	p.weaponButton.SetWeapon(p.site.Weapon())
	if on {
		p.hud.Show()
	} else {
		p.hud.Hide()
	}
	if on {
		ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
