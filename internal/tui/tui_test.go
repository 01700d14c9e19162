package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"go-shatter/internal/app"
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/defs"
	"go-shatter/internal/types"
)

type recorder struct {
	played []types.WeaponKind
}

func (r *recorder) Play(w types.WeaponKind) { r.played = append(r.played, w) }

func newTestApp(t *testing.T) (*App, *app.Site, *recorder, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(120, 40)
	t.Cleanup(screen.Fini)

	site := app.NewSite(app.Options{Seed: 7, Width: 1200, Height: 960, Measurer: CellMeasurer{}})
	page := &defs.PageDefinition{
		ID: "t",
		Blocks: []defs.BlockDefinition{
			{ID: "mission", Type: defs.BlockParagraph, Text: "hello world"},
		},
		Logos: []defs.LogoDefinition{{ID: "logo-go", Label: "Go"}},
	}
	if err := site.Mount(page); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(site.Close)
	rec := &recorder{}
	return New(screen, site, rec), site, rec, screen
}

func wordCell(t *testing.T, site *app.Site, index int) (int, int) {
	t.Helper()
	w, ok := site.TextBlocks()[0].Word(index)
	if !ok {
		t.Fatalf("no word %d", index)
	}
	return ToCell(w.Rect.X, w.Rect.Y+w.Rect.H/2)
}

func click(a *App, col, row int) {
	a.HandleEvent(tcell.NewEventMouse(col, row, tcell.Button1, 0))
	a.HandleEvent(tcell.NewEventMouse(col, row, tcell.ButtonNone, 0))
}

func readRow(screen tcell.SimulationScreen, col, row, n int) string {
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		r, _, _, _ := screen.GetContent(col+i, row)
		out = append(out, r)
	}
	return string(out)
}

func TestDrawPutsWordsInCells(t *testing.T) {
	a, site, _, screen := newTestApp(t)
	a.Draw()
	col, row := wordCell(t, site, 0)
	if got := readRow(screen, col, row, 11); got != "hello world" {
		t.Fatalf("row %d = %q", row, got)
	}
}

func TestClickShootsWordUnderCursor(t *testing.T) {
	a, site, rec, _ := newTestApp(t)
	col, row := wordCell(t, site, 2)

	click(a, col, row)
	if site.Registry.HasDestruction() {
		t.Fatal("click in browse mode should not shoot")
	}

	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 's', 0))
	if site.Mode() != component.ShootingMode {
		t.Fatal("'s' did not enable shooting")
	}
	click(a, col, row)
	if !site.Registry.IsDestroyed(types.KindWord, "word-mission-2") {
		t.Fatal("word under cursor not destroyed")
	}
	if len(rec.played) != 1 || rec.played[0] != types.WeaponPrecision {
		t.Fatalf("sounds = %v", rec.played)
	}
}

func TestHeldButtonFiresOnce(t *testing.T) {
	a, site, _, _ := newTestApp(t)
	site.SetMode(component.ShootingMode)
	a.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button1, 0))
	a.HandleEvent(tcell.NewEventMouse(2, 1, tcell.Button1, 0))
	if n := site.Stats().Shots; n != 1 {
		t.Fatalf("shots = %d, want 1", n)
	}
}

func TestKeys(t *testing.T) {
	a, site, _, _ := newTestApp(t)
	key := func(r rune) bool { return a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, 0)) }

	key('3')
	if site.Weapon() != types.WeaponExplosive {
		t.Fatalf("weapon = %s", site.Weapon())
	}
	a.HandleEvent(tcell.NewEventKey(tcell.KeyTab, 0, 0))
	if site.Weapon() != types.WeaponPrecision {
		t.Fatalf("tab after explosive = %s", site.Weapon())
	}
	key('p')
	if !site.IsPaused() {
		t.Fatal("'p' did not pause")
	}
	key('p')

	site.SetMode(component.ShootingMode)
	l := site.Logos()[0]
	site.Shoot(l.Bounds().Center())
	key('r')
	site.Update(0)
	if site.Registry.HasDestruction() || l.Destroyed() {
		t.Fatal("'r' did not repair")
	}

	if key('q') {
		t.Fatal("'q' should quit")
	}
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0)) {
		t.Fatal("Esc should quit")
	}
}

func TestDestroyedWordDisappears(t *testing.T) {
	a, site, _, screen := newTestApp(t)
	site.SetMode(component.ShootingMode)
	col, row := wordCell(t, site, 0)
	click(a, col, row)

	// Осколок улетает за несколько сотен кадров.
	for i := 0; i < 400; i++ {
		site.Update(config.FrameTime)
	}
	a.Draw()
	if got := readRow(screen, col, row, 5); got == "hello" {
		t.Fatal("destroyed word still drawn in place")
	}
	w, _ := site.TextBlocks()[0].Word(0)
	if !w.Destroyed {
		t.Fatal("word not marked destroyed")
	}
}

func TestShotStreamerLength(t *testing.T) {
	sr := beep.SampleRate(44100)
	for _, w := range types.Weapons {
		s := ShotStreamer(w, sr)
		total := 0
		buf := make([][2]float64, 512)
		for i := 0; i < 1000; i++ {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if total == 0 || total > sr.N(2*time.Second) {
			t.Errorf("%s: streamed %d samples", w, total)
		}
	}
}
