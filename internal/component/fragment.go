package component

import (
	"image/color"

	"go-shatter/internal/types"
)

// Lifecycle — состояние осколка. Переходы только вперёд:
// Visible → Falling → Gone. Ушедший осколок не возвращается.
type Lifecycle int

const (
	Visible Lifecycle = iota
	Falling
	Gone
)

func (l Lifecycle) String() string {
	switch l {
	case Visible:
		return "visible"
	case Falling:
		return "falling"
	case Gone:
		return "gone"
	}
	return "unknown"
}

// StyleSnapshot — стиль слова, снятый в момент разрушения, чтобы
// летящий осколок выглядел как текст, из которого вылетел.
type StyleSnapshot struct {
	FontFamily string
	FontSize   float64
	FontWeight int
	Color      color.RGBA
	LineHeight float64
}

// Fragment — кусок блока под физикой.
type Fragment struct {
	ID     types.FragmentID
	UnitID types.UnitID
	Kind   types.UnitKind

	Position
	Velocity
	W, H          float64
	Rotation      float64 // радианы
	RotationSpeed float64

	State Lifecycle

	// Source — область исходного изображения (для плиток).
	Source Rect
	// Text и Style заполнены для слов.
	Text  string
	Style *StyleSnapshot
}

// Bounds возвращает текущий прямоугольник осколка без учёта поворота.
func (f *Fragment) Bounds() Rect {
	return Rect{X: f.X, Y: f.Y, W: f.W, H: f.H}
}

// Drop переводит видимый осколок в падение. Возвращает false,
// если осколок уже падает или ушёл.
func (f *Fragment) Drop() bool {
	if f.State != Visible {
		return false
	}
	f.State = Falling
	return true
}

// Retire помечает осколок ушедшим. Состояние Gone окончательное.
func (f *Fragment) Retire() {
	f.State = Gone
}
