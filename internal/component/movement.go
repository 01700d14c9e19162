// component/movement.go
package component

// Position — компонент позиции (левый верхний угол, координаты окна)
type Position struct {
	X, Y float64
}

// Velocity — скорость в пикселях за кадр
type Velocity struct {
	VX, VY float64
}

// Rect — прямоугольник в координатах окна.
type Rect struct {
	X, Y, W, H float64
}

// Empty — нулевая площадь (блок ещё не разложен).
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains проверяет попадание точки; правая и нижняя границы не включаются.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center возвращает центр прямоугольника.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset сжимает прямоугольник на d с каждой стороны (отрицательное d расширяет).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Union возвращает наименьший прямоугольник, содержащий оба.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
