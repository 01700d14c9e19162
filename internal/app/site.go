// internal/app/site.go
package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/defs"
	"go-shatter/internal/event"
	"go-shatter/internal/fragment"
	"go-shatter/internal/hit"
	"go-shatter/internal/registry"
	"go-shatter/internal/repair"
	"go-shatter/internal/system"
	"go-shatter/internal/types"
	"go-shatter/internal/unit"
	"go-shatter/internal/utils"
)

// ErrDuplicateUnit is returned when two content units share an id.
var ErrDuplicateUnit = errors.New("duplicate unit id")

// Options configures a Site.
type Options struct {
	Seed     int64 // 0 — от текущего времени
	Tuning   *config.Tuning
	Width    float64
	Height   float64
	Measurer unit.Measurer
	// Hits подменяет встроенный резолвер (например, браузерным).
	Hits hit.HitTester
}

// Site holds the destructible page and everything the units share.
type Site struct {
	EventDispatcher *event.Dispatcher
	Registry        *registry.Registry
	Scheduler       *system.FrameScheduler
	Tree            *hit.Tree
	Repair          *repair.Coordinator
	Rng             *utils.PRNGService
	Tuning          *config.Tuning

	env      *unit.Env
	measurer unit.Measurer
	width    float64
	height   float64

	page   *defs.PageDefinition
	units  map[types.UnitID]unit.Unit
	blocks []*unit.TextBlock
	images []*unit.Image
	logos  []*unit.Logo
	decals *Decals

	// Page state
	mode     component.Mode
	weapon   types.WeaponKind
	isPaused bool
	shots    int
}

// NewSite wires the registry, the shot bus and the shared services.
func NewSite(opts Options) *Site {
	if opts.Tuning == nil {
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Width <= 0 {
		opts.Width = config.ScreenWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.ScreenHeight
	}
	if opts.Measurer == nil {
		opts.Measurer = ApproxMeasurer{}
	}

	eventDispatcher := event.NewDispatcher()
	reg := registry.New(eventDispatcher)
	tree := hit.NewTree()
	rng := utils.NewPRNGService(opts.Seed)
	scheduler := system.NewFrameScheduler()

	s := &Site{
		EventDispatcher: eventDispatcher,
		Registry:        reg,
		Scheduler:       scheduler,
		Tree:            tree,
		Repair:          repair.New(reg, eventDispatcher),
		Rng:             rng,
		Tuning:          opts.Tuning,
		measurer:        opts.Measurer,
		width:           opts.Width,
		height:          opts.Height,
		units:           make(map[types.UnitID]unit.Unit),
		decals:          NewDecals(config.MaxBulletHoles),
		weapon:          types.WeaponPrecision,
	}

	hits := opts.Hits
	if hits == nil {
		hits = hit.NewResolver(tree, reg)
	}
	physics := system.PhysicsFromTuning(opts.Tuning, opts.Height)
	s.env = &unit.Env{
		Dispatcher: eventDispatcher,
		Registry:   reg,
		Scheduler:  scheduler,
		Tree:       tree,
		Hits:       hits,
		Fragmenter: fragment.New(rng, opts.Tuning),
		Physics:    &physics,
	}

	eventDispatcher.SetFallback(event.ShotFired, event.ListenerFunc(s.placeDecal))
	eventDispatcher.SubscribeFunc(event.RepairRequested, func(*event.Event) { s.RepairAll() })
	return s
}

// Mount creates units for every record of the page. On a duplicate id
// nothing is mounted.
func (s *Site) Mount(page *defs.PageDefinition) error {
	var pending []unit.Unit
	seen := make(map[types.UnitID]bool)
	add := func(u unit.Unit) error {
		if seen[u.ID()] {
			return fmt.Errorf("%w: %s", ErrDuplicateUnit, u.ID())
		}
		seen[u.ID()] = true
		pending = append(pending, u)
		return nil
	}

	for _, b := range page.Blocks {
		if err := add(unit.NewTextBlock(types.UnitID(b.ID), string(b.Type), b.Text, blockStyle(b))); err != nil {
			return err
		}
	}
	for _, im := range page.Images {
		if err := add(unit.NewImage(types.UnitID(im.ID), im.Slug, im.Alt, im.Path)); err != nil {
			return err
		}
	}
	for _, l := range page.Logos {
		if err := add(unit.NewLogo(types.UnitID(l.ID), l.Label, l.Path, l.Color)); err != nil {
			return err
		}
	}

	if len(s.units) > 0 {
		s.Unmount()
	}
	s.page = page
	for _, u := range pending {
		u.Mount(s.env)
		s.Repair.Register(u)
		s.units[u.ID()] = u
		switch v := u.(type) {
		case *unit.TextBlock:
			s.blocks = append(s.blocks, v)
		case *unit.Image:
			s.images = append(s.images, v)
		case *unit.Logo:
			s.logos = append(s.logos, v)
		}
	}
	s.Layout(s.width, s.height)
	log.Printf("[Site] Mounted page %q: %d blocks, %d images, %d logos",
		page.ID, len(s.blocks), len(s.images), len(s.logos))
	return nil
}

// Unmount disposes every unit. The registry is left as is.
func (s *Site) Unmount() {
	for _, u := range s.units {
		u.Dispose()
		s.Repair.Unregister(u)
	}
	clear(s.units)
	s.blocks, s.images, s.logos = nil, nil, nil
	s.page = nil
}

// Update advances timers and fragment physics by one frame and
// reconciles every unit with the registry.
func (s *Site) Update(dt time.Duration) {
	if !s.isPaused {
		s.Scheduler.Advance(dt)
	}
	s.Repair.ReconcileAll()
}

// Shoot fires the current weapon at (x, y). Outside shooting mode the
// click is ignored and false is returned.
func (s *Site) Shoot(x, y float64) bool {
	return s.ShootWith(x, y, s.weapon)
}

// ShootWith fires a specific weapon.
func (s *Site) ShootWith(x, y float64, weapon types.WeaponKind) bool {
	if s.mode != component.ShootingMode || s.isPaused {
		return false
	}
	s.shots++
	s.EventDispatcher.Dispatch(event.NewShot(x, y, weapon))
	return true
}

// UseHitTester подменяет поиск попаданий, например браузерным.
// Созданному резолверу нужен реестр сайта, поэтому это отдельный шаг.
func (s *Site) UseHitTester(h hit.HitTester) {
	s.env.Hits = h
}

// IsDestroyed отвечает, можно ли ещё попасть в блок. Изображение
// разрушено в реестре с первого выстрела, но принимает выстрелы,
// пока не осыпалось целиком.
func (s *Site) IsDestroyed(kind types.UnitKind, id types.UnitID) bool {
	if kind == types.KindImage {
		if img, ok := s.units[id].(*unit.Image); ok {
			return img.Stage() == component.StageDestroyed
		}
	}
	return s.Registry.IsDestroyed(kind, id)
}

// RepairAll restores the page and wipes bullet holes.
func (s *Site) RepairAll() {
	s.Repair.RepairAll()
	s.decals.Clear()
}

// --- Private Helper Functions ---

func (s *Site) placeDecal(e *event.Event) {
	shot, ok := e.Data.(event.Shot)
	if !ok {
		return
	}
	s.decals.Add(Decal{X: shot.X, Y: shot.Y, Weapon: shot.Weapon, Frame: s.Scheduler.Frame()})
	s.EventDispatcher.Dispatch(&event.Event{Type: event.DecalPlaced, Data: shot})
}

// --- Public Accessors & Mutators ---

func (s *Site) Mode() component.Mode {
	return s.mode
}

// SetMode switches between browsing and shooting.
func (s *Site) SetMode(m component.Mode) {
	if s.mode == m {
		return
	}
	s.mode = m
	s.EventDispatcher.Dispatch(&event.Event{Type: event.ModeChanged, Data: m == component.ShootingMode})
}

func (s *Site) ToggleMode() {
	if s.mode == component.ShootingMode {
		s.SetMode(component.BrowseMode)
	} else {
		s.SetMode(component.ShootingMode)
	}
}

func (s *Site) Weapon() types.WeaponKind {
	return s.weapon
}

// SetWeapon selects the weapon; unknown kinds are ignored.
func (s *Site) SetWeapon(w types.WeaponKind) {
	if !w.Valid() || w == s.weapon {
		return
	}
	s.weapon = w
	s.EventDispatcher.Dispatch(&event.Event{Type: event.WeaponChanged, Data: w})
}

func (s *Site) CycleWeapon() {
	s.SetWeapon(s.weapon.Next())
}

func (s *Site) SetPaused(p bool) {
	s.isPaused = p
}

// IsPaused возвращает текущее состояние паузы.
func (s *Site) IsPaused() bool {
	return s.isPaused
}

func (s *Site) Page() *defs.PageDefinition {
	return s.page
}

func (s *Site) Unit(id types.UnitID) (unit.Unit, bool) {
	u, ok := s.units[id]
	return u, ok
}

func (s *Site) TextBlocks() []*unit.TextBlock {
	return s.blocks
}

func (s *Site) Images() []*unit.Image {
	return s.images
}

func (s *Site) Logos() []*unit.Logo {
	return s.logos
}

func (s *Site) Decals() []Decal {
	return s.decals.All()
}

// Stats — счётчики для HUD.
type Stats struct {
	Shots     int
	Words     int
	Images    int // изображения и логотипы
	Fragments int
}

func (s *Site) Stats() Stats {
	st := Stats{
		Shots:  s.shots,
		Words:  s.Registry.Count(types.KindWord),
		Images: s.Registry.Count(types.KindImage),
	}
	for _, u := range s.units {
		st.Fragments += len(u.Fragments())
	}
	return st
}

func (s *Site) Size() (float64, float64) {
	return s.width, s.height
}

// Close disposes the page and detaches the repair coordinator.
func (s *Site) Close() {
	s.Unmount()
	s.Repair.Close()
}
