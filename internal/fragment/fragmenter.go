package fragment

import (
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/types"
	"go-shatter/internal/utils"
)

// Fragmenter создаёт осколки и задаёт им начальную кинематику.
// Вся случайность идёт через один Rng.
type Fragmenter struct {
	rng    utils.Rng
	tuning *config.Tuning
	nextID types.FragmentID
}

// New создаёт фрагментатор.
func New(rng utils.Rng, tuning *config.Tuning) *Fragmenter {
	return &Fragmenter{rng: rng, tuning: tuning}
}

// Tuning возвращает текущие настройки.
func (fr *Fragmenter) Tuning() *config.Tuning {
	return fr.tuning
}

func (fr *Fragmenter) id() types.FragmentID {
	fr.nextID++
	return fr.nextID
}

// SelectWords — см. пакетную SelectWords.
func (fr *Fragmenter) SelectWords(weapon types.WeaponKind, struck int, alive []int) []int {
	return SelectWords(fr.rng, weapon, struck, alive, fr.tuning.Spread)
}

// KnockCount — см. пакетную KnockCount.
func (fr *Fragmenter) KnockCount(weapon types.WeaponKind, remaining int) int {
	return KnockCount(fr.rng, weapon, remaining)
}

// Kick задаёт случайную начальную скорость и вращение с множителем m.
// vx ∈ [-VXRange, VXRange]·m, vy ∈ [-VYMax, -VYMin]·m (вверх).
func (fr *Fragmenter) Kick(f *component.Fragment, m float64) {
	l := fr.tuning.Launch
	f.VX = utils.RangeF(fr.rng, -l.VXRange, l.VXRange) * m
	f.VY = -utils.RangeF(fr.rng, l.VYMin, l.VYMax) * m
	f.RotationSpeed = utils.Sign(fr.rng) * utils.RangeF(fr.rng, l.RotMin, l.RotMax) * m
}

// Word создаёт осколок слова со снимком стиля. nil для пустого прямоугольника.
func (fr *Fragmenter) Word(unit types.UnitID, text string, rect component.Rect, style *component.StyleSnapshot, weapon types.WeaponKind) *component.Fragment {
	if rect.Empty() {
		return nil
	}
	f := &component.Fragment{
		ID:       fr.id(),
		UnitID:   unit,
		Kind:     types.KindWord,
		Position: component.Position{X: rect.X, Y: rect.Y},
		W:        rect.W,
		H:        rect.H,
		Text:     text,
		Style:    style,
	}
	fr.Kick(f, fr.tuning.WeaponMultiplier(string(weapon)))
	return f
}

// Logo создаёт единственный осколок логотипа. nil для пустого прямоугольника.
func (fr *Fragmenter) Logo(unit types.UnitID, rect component.Rect, weapon types.WeaponKind) *component.Fragment {
	if rect.Empty() {
		return nil
	}
	f := &component.Fragment{
		ID:       fr.id(),
		UnitID:   unit,
		Kind:     types.KindLogo,
		Position: component.Position{X: rect.X, Y: rect.Y},
		W:        rect.W,
		H:        rect.H,
		Source:   component.Rect{W: rect.W, H: rect.H},
	}
	fr.Kick(f, fr.tuning.WeaponMultiplier(string(weapon)))
	return f
}

// Tiles режет изображение на видимые плитки по настройкам сетки.
func (fr *Fragmenter) Tiles(unit types.UnitID, rect component.Rect) []*component.Fragment {
	img := fr.tuning.Image
	tiles := Grid(fr.rng, unit, rect, GridSpec{
		Cols: img.Cols, Rows: img.Rows, Overlap: img.Overlap, Jitter: img.Jitter,
	})
	for _, t := range tiles {
		t.ID = fr.id()
	}
	return tiles
}

// KickTile задаёт кинематику выбитой плитке.
func (fr *Fragmenter) KickTile(f *component.Fragment, weapon types.WeaponKind) {
	fr.Kick(f, fr.tuning.TileMultiplier(string(weapon)))
}
