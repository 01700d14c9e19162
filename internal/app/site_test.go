package app

import (
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"go-shatter/internal/component"
	"go-shatter/internal/defs"
	"go-shatter/internal/event"
	"go-shatter/internal/types"
	"go-shatter/internal/unit"
)

const frame = time.Second / 60

type mono struct{}

func (mono) Measure(text string, s component.StyleSnapshot) (float64, float64) {
	return 10 * float64(utf8.RuneCountInString(text)), s.FontSize
}

func testPage() *defs.PageDefinition {
	return &defs.PageDefinition{
		ID: "test",
		Blocks: []defs.BlockDefinition{
			{ID: "mission", Type: defs.BlockParagraph, Text: "hello world"},
			{ID: "about", Type: defs.BlockParagraph, Text: "I build fast careful software"},
		},
		Images: []defs.ImageDefinition{
			{ID: "image-hero", Slug: "hero", Width: 480, Height: 300},
		},
		Logos: []defs.LogoDefinition{
			{ID: "logo-go", Label: "Go"},
		},
	}
}

func newTestSite(t *testing.T) *Site {
	t.Helper()
	s := NewSite(Options{Seed: 42, Width: 1200, Height: 900, Measurer: mono{}})
	if err := s.Mount(testPage()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	s.SetMode(component.ShootingMode)
	t.Cleanup(s.Close)
	return s
}

func centerOfWord(t *testing.T, s *Site, block types.UnitID, index int) (float64, float64) {
	t.Helper()
	u, ok := s.Unit(block)
	if !ok {
		t.Fatalf("no unit %s", block)
	}
	w, ok := u.(*unit.TextBlock).Word(index)
	if !ok {
		t.Fatalf("no word %d in %s", index, block)
	}
	return w.Rect.Center()
}

func (s *Site) runFrames(n int) {
	for i := 0; i < n; i++ {
		s.Update(frame)
	}
}

func TestMountRejectsDuplicateIDs(t *testing.T) {
	s := NewSite(Options{Measurer: mono{}})
	page := testPage()
	page.Logos = append(page.Logos, defs.LogoDefinition{ID: "logo-go"})
	err := s.Mount(page)
	if !errors.Is(err, ErrDuplicateUnit) {
		t.Fatalf("err = %v, want ErrDuplicateUnit", err)
	}
	if len(s.TextBlocks()) != 0 || s.Tree.Len() != 0 {
		t.Fatal("partial page mounted after duplicate id")
	}
}

func TestMountWithDuplicateKeepsCurrentPage(t *testing.T) {
	s := newTestSite(t)
	bad := testPage()
	bad.Blocks = append(bad.Blocks, defs.BlockDefinition{ID: "mission", Type: defs.BlockParagraph, Text: "again"})
	if err := s.Mount(bad); !errors.Is(err, ErrDuplicateUnit) {
		t.Fatalf("err = %v, want ErrDuplicateUnit", err)
	}
	if len(s.TextBlocks()) != 2 || len(s.Images()) != 1 || s.Page() == nil {
		t.Fatal("rejected page unmounted the current one")
	}
	x, y := centerOfWord(t, s, "mission", 0)
	if !s.Shoot(x, y) || !s.Registry.IsDestroyed(types.KindWord, "word-mission-0") {
		t.Fatal("current page stopped taking shots")
	}
}

func TestLayoutPlacesEveryUnit(t *testing.T) {
	s := newTestSite(t)
	for _, b := range s.TextBlocks() {
		if b.Bounds().Empty() {
			t.Fatalf("block %s not laid out", b.ID())
		}
	}
	img := s.Images()[0].Bounds()
	logo := s.Logos()[0].Bounds()
	if img.W != 480 || img.H != 300 {
		t.Fatalf("image rect = %+v", img)
	}
	if logo.Y < img.Y+img.H {
		t.Fatal("logos overlap the image row")
	}
}

func TestPrecisionShotThenRepairAll(t *testing.T) {
	s := newTestSite(t)
	x, y := centerOfWord(t, s, "mission", 2)

	if !s.Shoot(x, y) {
		t.Fatal("shot ignored in shooting mode")
	}
	if !s.Registry.IsDestroyed(types.KindWord, "word-mission-2") {
		t.Fatal("word-mission-2 not destroyed")
	}
	if s.Registry.Count(types.KindWord) != 1 {
		t.Fatalf("destroyed words = %d, want 1", s.Registry.Count(types.KindWord))
	}
	if len(s.Decals()) != 0 {
		t.Fatal("hit left a decal")
	}

	s.runFrames(5)
	s.RepairAll()
	s.runFrames(1)
	if s.Registry.HasDestruction() {
		t.Fatal("registry not clean after repair")
	}
	for _, b := range s.TextBlocks() {
		if b.DestroyedCount() != 0 || len(b.Fragments()) != 0 {
			t.Fatalf("block %s not restored", b.ID())
		}
	}
}

func TestImageDestroyedThenRepairedToIntact(t *testing.T) {
	s := newTestSite(t)
	img := s.Images()[0]
	cx, cy := img.Bounds().Center()

	s.ShootWith(cx, cy, types.WeaponPrecision)
	if !s.Registry.IsDestroyed(types.KindImage, "image-hero") {
		t.Fatal("image not registered on first shot")
	}
	s.Update(200 * time.Millisecond)
	s.Update(300 * time.Millisecond)
	if img.Stage() != component.StageFragmented {
		t.Fatalf("stage = %v, want fragmented", img.Stage())
	}
	if n := len(img.VisibleTiles()); n != 16 {
		t.Fatalf("visible tiles after reveal = %d, want 16", n)
	}
	for len(img.VisibleTiles()) > 0 {
		s.ShootWith(cx, cy, types.WeaponSpread)
	}
	s.Update(time.Second)
	s.runFrames(300)
	if img.Stage() != component.StageDestroyed {
		t.Fatalf("stage = %v, want destroyed", img.Stage())
	}
	if n := len(img.Fragments()); n != 0 {
		t.Fatalf("%d tiles still on screen", n)
	}

	s.RepairAll()
	s.runFrames(1)
	if img.Stage() != component.StageIntact || s.Registry.HasDestruction() {
		t.Fatal("image not restored")
	}
}

func TestExplosiveShotStaysInOneBlock(t *testing.T) {
	s := newTestSite(t)
	x, y := centerOfWord(t, s, "about", 4)
	s.ShootWith(x, y, types.WeaponExplosive)

	u, _ := s.Unit("about")
	for _, w := range u.(*unit.TextBlock).Words() {
		if !s.Registry.IsDestroyed(types.KindWord, w.ID) {
			t.Fatalf("%s survived", w.ID)
		}
	}
	if s.Registry.IsDestroyed(types.KindWord, "word-mission-0") {
		t.Fatal("explosion crossed into another block")
	}
}

func TestMissLeavesDecal(t *testing.T) {
	s := newTestSite(t)
	var placed int
	s.EventDispatcher.SubscribeFunc(event.DecalPlaced, func(*event.Event) { placed++ })

	s.Shoot(5, 5)
	decals := s.Decals()
	if len(decals) != 1 || decals[0].X != 5 || decals[0].Weapon != types.WeaponPrecision {
		t.Fatalf("decals = %+v", decals)
	}
	if placed != 1 {
		t.Fatalf("DecalPlaced dispatched %d times", placed)
	}

	// След остаётся, пока кто-то что-то не сломал; починка стирает всё.
	x, y := centerOfWord(t, s, "mission", 0)
	s.Shoot(x, y)
	s.RepairAll()
	if len(s.Decals()) != 0 {
		t.Fatal("repair kept decals")
	}
}

func TestBrowseModeIgnoresShots(t *testing.T) {
	s := newTestSite(t)
	s.SetMode(component.BrowseMode)
	x, y := centerOfWord(t, s, "mission", 0)
	if s.Shoot(x, y) {
		t.Fatal("shot accepted in browse mode")
	}
	if s.Registry.HasDestruction() || len(s.Decals()) != 0 {
		t.Fatal("browse-mode click had an effect")
	}
}

func TestPauseFreezesFragments(t *testing.T) {
	s := newTestSite(t)
	x, y := centerOfWord(t, s, "mission", 0)
	s.Shoot(x, y)
	u, _ := s.Unit("mission")
	f := u.Fragments()[0]

	s.SetPaused(true)
	if s.Shoot(x, y) {
		t.Fatal("shot accepted while paused")
	}
	fy := f.Y
	s.runFrames(10)
	if f.Y != fy {
		t.Fatal("fragment moved while paused")
	}
	s.SetPaused(false)
	s.runFrames(1)
	if f.Y == fy {
		t.Fatal("fragment did not resume")
	}
}

func TestWeaponAndModeEvents(t *testing.T) {
	s := NewSite(Options{Measurer: mono{}})
	var got []event.EventType
	rec := func(e *event.Event) { got = append(got, e.Type) }
	s.EventDispatcher.SubscribeFunc(event.WeaponChanged, rec)
	s.EventDispatcher.SubscribeFunc(event.ModeChanged, rec)

	s.CycleWeapon()
	s.SetWeapon(types.WeaponSpread) // уже выбрано
	s.SetWeapon("laser")
	s.ToggleMode()
	s.ToggleMode()

	if s.Weapon() != types.WeaponSpread {
		t.Fatalf("weapon = %v, want spread", s.Weapon())
	}
	if len(got) != 3 {
		t.Fatalf("events = %v, want 3", got)
	}
	if s.Mode() != component.BrowseMode {
		t.Fatal("mode did not toggle back")
	}
}

func TestStats(t *testing.T) {
	s := newTestSite(t)
	lx, ly := s.Logos()[0].Bounds().Center()
	s.Shoot(lx, ly)
	s.Shoot(1, 1)
	st := s.Stats()
	if st.Shots != 2 || st.Images != 1 || st.Words != 0 || st.Fragments != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestDecalRingBuffer(t *testing.T) {
	d := NewDecals(3)
	for i := 0; i < 5; i++ {
		d.Add(Decal{X: float64(i)})
	}
	all := d.All()
	if len(all) != 3 || all[0].X != 2 || all[2].X != 4 {
		t.Fatalf("decals = %+v", all)
	}
	d.Clear()
	if d.Len() != 0 || len(d.All()) != 0 {
		t.Fatal("Clear kept decals")
	}
}

func TestFitImage(t *testing.T) {
	tests := []struct {
		w, h, maxW, wantW, wantH float64
	}{
		{480, 300, 1000, 480, 300},
		{2000, 1000, 1000, 1000, 500},
		{0, 300, 1000, 0, 0},
	}
	for _, tt := range tests {
		w, h := fitImage(tt.w, tt.h, tt.maxW)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitImage(%v,%v,%v) = %v,%v", tt.w, tt.h, tt.maxW, w, h)
		}
	}
}

func TestRepairRequestedEventRepairs(t *testing.T) {
	s := newTestSite(t)
	x, y := centerOfWord(t, s, "about", 0)
	s.Shoot(x, y)
	s.Shoot(3, 3)

	s.EventDispatcher.Dispatch(&event.Event{Type: event.RepairRequested})
	if s.Registry.HasDestruction() || len(s.Decals()) != 0 {
		t.Fatal("RepairRequested did not restore the page")
	}
}

func TestIsDestroyedFollowsImageStage(t *testing.T) {
	s := newTestSite(t)
	img := s.Images()[0]
	cx, cy := img.Bounds().Center()

	s.Shoot(cx, cy)
	if s.IsDestroyed(types.KindImage, img.ID()) {
		t.Fatal("cracking image should still be a target")
	}
	if !s.Registry.IsDestroyed(types.KindImage, img.ID()) {
		t.Fatal("registry should already count the image")
	}
	s.Update(200 * time.Millisecond)
	s.Update(300 * time.Millisecond)
	for len(img.VisibleTiles()) > 0 {
		s.ShootWith(cx, cy, types.WeaponExplosive)
	}
	s.Update(time.Second)
	if !s.IsDestroyed(types.KindImage, img.ID()) {
		t.Fatal("fully fallen image should not be a target")
	}

	x, y := centerOfWord(t, s, "mission", 0)
	s.Shoot(x, y)
	if !s.IsDestroyed(types.KindWord, "word-mission-0") {
		t.Fatal("words follow the registry")
	}
}

func TestIsDestroyedImageKindOnOtherUnit(t *testing.T) {
	s := newTestSite(t)
	if s.IsDestroyed(types.KindImage, "mission") {
		t.Fatal("intact text block reported destroyed")
	}
	s.Registry.Destroy(types.KindImage, "logo-go")
	if !s.IsDestroyed(types.KindImage, "logo-go") {
		t.Fatal("non-image unit should fall back to the registry")
	}
}

func TestResizeMovesFragmentFloor(t *testing.T) {
	s := NewSite(Options{Seed: 42, Width: 1200, Height: 300, Measurer: mono{}})
	if err := s.Mount(testPage()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	t.Cleanup(s.Close)
	s.SetMode(component.ShootingMode)
	s.Layout(1200, 2000)

	x, y := centerOfWord(t, s, "mission", 0)
	s.ShootWith(x, y, types.WeaponPrecision)
	u, _ := s.Unit("mission")
	frags := u.(*unit.TextBlock).Fragments()
	if len(frags) != 1 {
		t.Fatalf("fragments = %d, want 1", len(frags))
	}
	f := frags[0]
	for i := 0; i < 2000 && f.State != component.Gone; i++ {
		s.Update(frame)
	}
	if f.State != component.Gone {
		t.Fatal("fragment never left the screen")
	}
	if floor := 2000 + s.Tuning.Physics.OffscreenSlack; f.Y <= floor {
		t.Fatalf("fragment retired at y=%v, above the resized floor %v", f.Y, floor)
	}
}
