package hit

import (
	"go-shatter/internal/types"
)

// Hit — поражённый блок.
type Hit struct {
	Kind  types.UnitKind
	ID    types.UnitID
	Owner types.UnitID
	Index int
	X, Y  float64
}

// HitTester — всё, что нужно компонентам: кто под точкой.
// Промах — (Hit{}, false), никогда не паника.
type HitTester interface {
	Resolve(x, y float64) (Hit, bool)
}

// DestructionChecker — часть реестра, нужная резолверу.
type DestructionChecker interface {
	IsDestroyed(kind types.UnitKind, id types.UnitID) bool
}

// Resolver ищет блок по дереву: верхний узел в точке, затем вверх
// до ближайшей границы блока. Вложенность решает всё: побеждает
// самая внутренняя граница, никаких оценок по расстоянию.
type Resolver struct {
	tree     *Tree
	registry DestructionChecker
}

// NewResolver создаёт резолвер поверх дерева и реестра.
func NewResolver(tree *Tree, registry DestructionChecker) *Resolver {
	return &Resolver{tree: tree, registry: registry}
}

// Resolve реализует HitTester.
func (r *Resolver) Resolve(x, y float64) (Hit, bool) {
	id, ok := r.tree.ElementAt(x, y)
	if !ok {
		return Hit{}, false
	}
	for cur := id; cur != 0; cur = r.tree.Parent(cur) {
		b, ok := r.tree.BoundaryOf(cur)
		if !ok {
			continue
		}
		if !r.targetable(b) {
			return Hit{}, false
		}
		return Hit{Kind: b.Kind, ID: b.ID, Owner: b.Owner, Index: b.Index, X: x, Y: y}, true
	}
	return Hit{}, false
}

func (r *Resolver) targetable(b *Boundary) bool {
	if b.Targetable != nil {
		return b.Targetable()
	}
	if r.registry == nil {
		return true
	}
	return !r.registry.IsDestroyed(b.Kind, b.ID)
}
