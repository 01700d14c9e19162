package unit

import (
	"go-shatter/internal/component"
	"go-shatter/internal/event"
	"go-shatter/internal/fragment"
	"go-shatter/internal/hit"
	"go-shatter/internal/system"
	"go-shatter/internal/types"
)

// Image — изображение, которое трескается, пикселизуется и осыпается
// плитками. Стадии: intact → cracking → pixelating → fragmented → destroyed.
type Image struct {
	base
	Slug string
	Alt  string
	Path string

	stage   component.ImageStage
	timer   system.Handle // таймер текущей стадии
	grace   system.Handle // таймер перехода в destroyed
	pending event.Shot    // выстрел, начавший разрушение
}

// NewImage создаёт изображение с заданным id.
func NewImage(id types.UnitID, slug, alt, path string) *Image {
	return &Image{base: base{id: id}, Slug: slug, Alt: alt, Path: path}
}

func (img *Image) Kind() types.UnitKind {
	return types.KindImage
}

// Stage возвращает текущую стадию.
func (img *Image) Stage() component.ImageStage {
	return img.stage
}

// Mount подписывает изображение на выстрелы. Изображение остаётся
// целью, пока не дошло до destroyed, хотя в реестре оно разрушено
// с первого выстрела.
func (img *Image) Mount(env *Env) {
	img.mount(env, img, &hit.Boundary{
		Kind:       types.KindImage,
		ID:         img.id,
		Targetable: img.targetable,
	})
	img.Reconcile()
}

func (img *Image) targetable() bool {
	return img.stage != component.StageDestroyed
}

// Dispose отменяет таймеры стадий и бросает плитки.
func (img *Image) Dispose() {
	if !img.mounted() {
		return
	}
	img.cancelTimers()
	img.dispose()
}

// SetRect задаёт место изображения на странице.
func (img *Image) SetRect(r component.Rect) {
	img.rect = r
	if img.mounted() {
		img.env.Tree.Move(img.node, r)
	}
}

// OnEvent обрабатывает выстрел. Пока идёт трещина или пикселизация,
// выстрелы поглощаются без эффекта.
func (img *Image) OnEvent(e *event.Event) {
	shot, h, ok := img.resolve(e)
	if !ok || h.Kind != types.KindImage || h.ID != img.id {
		return
	}

	switch img.stage {
	case component.StageIntact:
		if img.rect.Empty() {
			return
		}
		e.StopPropagation()
		img.pending = shot
		img.stage = component.StageCracking
		img.timer = img.env.Scheduler.After(img.env.Fragmenter.Tuning().Image.Cracking, img.pixelate)
		img.env.Registry.Destroy(types.KindImage, img.id)
		img.shattered()
	case component.StageCracking, component.StagePixelating:
		e.StopPropagation()
	case component.StageFragmented:
		e.StopPropagation()
		img.knock(shot)
	}
}

func (img *Image) pixelate() {
	img.timer = 0
	img.stage = component.StagePixelating
	img.timer = img.env.Scheduler.After(img.env.Fragmenter.Tuning().Image.Pixelating, img.fragment)
}

func (img *Image) fragment() {
	img.timer = 0
	tiles := img.env.Fragmenter.Tiles(img.id, img.rect)
	for _, t := range tiles {
		img.fragments.Add(t)
	}
	img.stage = component.StageFragmented
}

// knock выбивает ближайшие к точке выстрела плитки.
func (img *Image) knock(shot event.Shot) {
	fr := img.env.Fragmenter
	visible := img.fragments.Visible()
	n := fr.KnockCount(shot.Weapon, len(visible))
	for _, t := range fragment.Nearest(visible, shot.X, shot.Y, n) {
		fr.KickTile(t, shot.Weapon)
		img.fragments.Drop(t)
	}
	if len(img.fragments.Visible()) == 0 && img.grace == 0 {
		img.grace = img.env.Scheduler.After(fr.Tuning().Image.Grace, img.finish)
	}
}

func (img *Image) finish() {
	img.grace = 0
	img.stage = component.StageDestroyed
}

func (img *Image) cancelTimers() {
	if img.timer != 0 {
		img.env.Scheduler.Cancel(img.timer)
		img.timer = 0
	}
	if img.grace != 0 {
		img.env.Scheduler.Cancel(img.grace)
		img.grace = 0
	}
}

// Reconcile сбрасывает изображение в intact, если реестр его больше
// не считает разрушенным, и наоборот, без анимации.
func (img *Image) Reconcile() {
	if !img.mounted() {
		return
	}
	destroyed := img.env.Registry.IsDestroyed(types.KindImage, img.id)
	switch {
	case !destroyed && img.stage != component.StageIntact:
		img.cancelTimers()
		img.fragments.Clear()
		img.stage = component.StageIntact
		img.pending = event.Shot{}
	case destroyed && img.stage == component.StageIntact:
		img.stage = component.StageDestroyed
	}
}

// VisibleTiles возвращает плитки, которые ещё на месте.
func (img *Image) VisibleTiles() []*component.Fragment {
	if img.fragments == nil {
		return nil
	}
	return img.fragments.Visible()
}

// Impact возвращает точку выстрела, с которого началось разрушение.
func (img *Image) Impact() (float64, float64) {
	return img.pending.X, img.pending.Y
}
