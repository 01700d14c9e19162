// Package tui — терминальная версия страницы на tcell: слова в ячейках,
// стрельба мышью.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"go-shatter/internal/app"
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/event"
	"go-shatter/internal/types"
)

// App связывает экран tcell с сайтом.
type App struct {
	screen     tcell.Screen
	site       *app.Site
	sound      Sound
	cols, rows int
	buttons    tcell.ButtonMask
	lastShot   time.Time
}

// New создаёт приложение. sound может быть nil.
func New(screen tcell.Screen, site *app.Site, sound Sound) *App {
	a := &App{screen: screen, site: site, sound: sound}
	a.resize()
	return a
}

// Run крутит цикл: события экрана из отдельной горутины, кадр по тикеру.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(config.FrameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventChan:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.site.Update(config.FrameTime)
			a.Draw()
		}
	}
}

// HandleEvent обрабатывает одно событие; false — выход.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	}
	return true
}

// --- Private Helper Functions ---

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		a.site.CycleWeapon()
		return true
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 's':
		a.site.ToggleMode()
	case 'r':
		a.site.EventDispatcher.Dispatch(&event.Event{Type: event.RepairRequested})
	case 'p':
		a.site.SetPaused(!a.site.IsPaused())
	case '1', '2', '3':
		a.site.SetWeapon(types.Weapons[ev.Rune()-'1'])
	}
	return true
}

// handleMouse стреляет по нажатию левой кнопки, не по удержанию.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0
	a.buttons = ev.Buttons()
	if !pressed {
		return
	}
	if time.Since(a.lastShot) < config.ClickCooldown*time.Millisecond {
		return
	}
	col, row := ev.Position()
	x, y := ToPixel(col, row)
	if a.site.Shoot(x, y) {
		a.lastShot = time.Now()
		if a.sound != nil {
			a.sound.Play(a.site.Weapon())
		}
	}
}

func (a *App) resize() {
	a.cols, a.rows = a.screen.Size()
	a.site.Layout(float64(a.cols)*CellW, float64(a.rows)*CellH)
}

// Draw рисует кадр. Слово стоит в строке, где его вертикальный центр,
// так что клик по любой его ячейке попадает в прямоугольник слова.
func (a *App) Draw() {
	a.screen.Clear()
	bg := tcell.StyleDefault.Background(rgb(config.BackgroundColor))
	a.screen.Fill(' ', bg)

	for _, d := range a.site.Decals() {
		col, row := ToCell(d.X, d.Y)
		a.put(col, row, '•', bg.Foreground(rgb(config.HoleRimColor)))
	}
	a.drawText(bg)
	a.drawImages(bg)
	a.drawLogos(bg)
	a.drawStatus()
	a.screen.Show()
}

func (a *App) drawText(bg tcell.Style) {
	for _, b := range a.site.TextBlocks() {
		style := b.Style()
		st := bg.Foreground(rgb(style.Color)).Bold(style.FontWeight >= 600)
		for _, w := range b.Words() {
			if w.Destroyed {
				continue
			}
			col, row := ToCell(w.Rect.X, w.Rect.Y+w.Rect.H/2)
			a.puts(col, row, w.Text, st)
		}
		for _, f := range b.Fragments() {
			if f.State == component.Gone {
				continue
			}
			col, row := ToCell(f.X, f.Y+f.H/2)
			a.puts(col, row, f.Text, st.Dim(true))
		}
	}
}

func (a *App) drawImages(bg tcell.Style) {
	for _, img := range a.site.Images() {
		r := img.Bounds()
		if r.Empty() {
			continue
		}
		var fill rune
		switch img.Stage() {
		case component.StageIntact:
			fill = '▓'
		case component.StageCracking:
			fill = '╳'
		case component.StagePixelating:
			fill = '▒'
		}
		st := bg.Foreground(rgb(config.MutedColor))
		if fill != 0 {
			a.fillRect(r, fill, st)
		}
		for _, t := range img.VisibleTiles() {
			a.fillRect(t.Bounds(), '█', st)
		}
		for _, t := range img.Fragments() {
			if t.State == component.Falling {
				col, row := ToCell(t.Bounds().Center())
				a.put(col, row, '▪', st)
			}
		}
	}
}

func (a *App) drawLogos(bg tcell.Style) {
	for _, l := range a.site.Logos() {
		label := "[" + l.Label + "]"
		st := bg.Background(rgb(l.Color)).Foreground(tcell.ColorWhite).Bold(true)
		if !l.Destroyed() {
			col, row := ToCell(l.Bounds().X, l.Bounds().Y+l.Bounds().H/2)
			a.puts(col, row, label, st)
		}
		for _, f := range l.Fragments() {
			if f.State == component.Falling {
				col, row := ToCell(f.X, f.Y+f.H/2)
				a.puts(col, row, label, st)
			}
		}
	}
}

func (a *App) drawStatus() {
	mode := "browse"
	if a.site.Mode() == component.ShootingMode {
		mode = "SHOOTING"
	}
	if a.site.IsPaused() {
		mode += " (paused)"
	}
	st := a.site.Stats()
	line := fmt.Sprintf(" %s | %s | shots %d  words %d  images %d | s mode  tab weapon  r repair  q quit ",
		mode, a.site.Weapon(), st.Shots, st.Words, st.Images)
	a.puts(0, a.rows-1, line, tcell.StyleDefault.Reverse(true))
}

func (a *App) fillRect(r component.Rect, ch rune, st tcell.Style) {
	c0, r0 := ToCell(r.X, r.Y)
	c1, r1 := ToCell(r.X+r.W, r.Y+r.H)
	for row := r0; row < max(r1, r0+1); row++ {
		for col := c0; col < max(c1, c0+1); col++ {
			a.put(col, row, ch, st)
		}
	}
}

func (a *App) puts(col, row int, s string, st tcell.Style) {
	for _, r := range s {
		a.put(col, row, r, st)
		col++
	}
}

func (a *App) put(col, row int, r rune, st tcell.Style) {
	if col < 0 || row < 0 || col >= a.cols || row >= a.rows {
		return
	}
	a.screen.SetContent(col, row, r, nil, st)
}

func rgb(c interface{ RGBA() (r, g, b, a uint32) }) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
