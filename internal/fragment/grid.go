package fragment

import (
	"math"
	"sort"

	"go-shatter/internal/component"
	"go-shatter/internal/types"
	"go-shatter/internal/utils"
)

// GridSpec — параметры нарезки изображения.
type GridSpec struct {
	Cols, Rows int
	Overlap    float64 // на сколько плитка выходит за свою ячейку с каждой стороны
	Jitter     float64 // максимальный сдвиг плитки, меньше Overlap
}

// Grid режет прямоугольник на Cols×Rows видимых плиток.
// Source — область исходника в координатах прямоугольника (без сдвига),
// так что сдвинутая плитка показывает свой кусок и швов не видно.
// Прямоугольник нулевой площади даёт nil.
func Grid(r utils.Rng, unit types.UnitID, rect component.Rect, spec GridSpec) []*component.Fragment {
	if rect.Empty() || spec.Cols <= 0 || spec.Rows <= 0 {
		return nil
	}

	tw := rect.W / float64(spec.Cols)
	th := rect.H / float64(spec.Rows)
	tiles := make([]*component.Fragment, 0, spec.Cols*spec.Rows)
	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			local := component.Rect{
				X: float64(col)*tw - spec.Overlap,
				Y: float64(row)*th - spec.Overlap,
				W: tw + 2*spec.Overlap,
				H: th + 2*spec.Overlap,
			}
			jx, jy := 0.0, 0.0
			if spec.Jitter > 0 {
				jx = utils.RangeF(r, -spec.Jitter, spec.Jitter)
				jy = utils.RangeF(r, -spec.Jitter, spec.Jitter)
			}
			tiles = append(tiles, &component.Fragment{
				UnitID:   unit,
				Kind:     types.KindImage,
				Position: component.Position{X: rect.X + local.X + jx, Y: rect.Y + local.Y + jy},
				W:        local.W,
				H:        local.H,
				State:    component.Visible,
				Source:   local,
			})
		}
	}
	return tiles
}

// Nearest возвращает до n видимых плиток, ближайших к точке (по центру).
func Nearest(tiles []*component.Fragment, x, y float64, n int) []*component.Fragment {
	type cand struct {
		f    *component.Fragment
		dist float64
	}
	var cands []cand
	for _, f := range tiles {
		if f.State != component.Visible {
			continue
		}
		cx, cy := f.Bounds().Center()
		cands = append(cands, cand{f: f, dist: math.Hypot(cx-x, cy-y)})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })

	n = min(n, len(cands))
	out := make([]*component.Fragment, n)
	for i := 0; i < n; i++ {
		out[i] = cands[i].f
	}
	return out
}
