// Package hit определяет, какой блок контента поражён выстрелом.
package hit

import (
	"go-shatter/internal/component"
	"go-shatter/internal/types"
)

// NodeID — идентификатор узла дерева отрисовки. 0 — корень/нет узла.
type NodeID uint64

// Boundary помечает узел как границу блока контента.
type Boundary struct {
	Kind types.UnitKind
	// ID — id блока в реестре (для слова — id слова).
	ID types.UnitID
	// Owner — компонент, которому принадлежит блок (для слова — текстовый блок).
	Owner types.UnitID
	// Index — позиция слова в тексте владельца; для остальных 0.
	Index int
	// Targetable переопределяет проверку реестра; nil — "цель, пока не разрушена".
	Targetable func() bool
}

type node struct {
	id       NodeID
	parent   NodeID
	rect     component.Rect
	z        int
	seq      uint64
	boundary *Boundary
	hidden   bool
}

// Tree — упрощённое дерево отрисовки: прямоугольники с порядком наложения
// и ссылками на родителя. Поддерживается макетом страницы.
type Tree struct {
	nodes map[NodeID]*node
	next  NodeID
	seq   uint64
}

// NewTree создаёт пустое дерево.
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*node)}
}

// Add добавляет узел. parent 0 — узел верхнего уровня. При равном z
// сверху оказывается добавленный позже.
func (t *Tree) Add(parent NodeID, rect component.Rect, z int, boundary *Boundary) NodeID {
	t.next++
	t.seq++
	t.nodes[t.next] = &node{
		id:       t.next,
		parent:   parent,
		rect:     rect,
		z:        z,
		seq:      t.seq,
		boundary: boundary,
	}
	return t.next
}

// Move меняет прямоугольник узла (после перекладки страницы).
func (t *Tree) Move(id NodeID, rect component.Rect) {
	if n, ok := t.nodes[id]; ok {
		n.rect = rect
	}
}

// SetHidden скрывает узел от точечного запроса (например, уничтоженное слово).
func (t *Tree) SetHidden(id NodeID, hidden bool) {
	if n, ok := t.nodes[id]; ok {
		n.hidden = hidden
	}
}

// Remove удаляет узел вместе со всеми потомками.
func (t *Tree) Remove(id NodeID) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	delete(t.nodes, id)
	for childID, n := range t.nodes {
		if n.parent == id {
			t.Remove(childID)
		}
	}
}

// Len — число узлов.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Rect возвращает прямоугольник узла.
func (t *Tree) Rect(id NodeID) (component.Rect, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return component.Rect{}, false
	}
	return n.rect, true
}

// ElementAt возвращает самый верхний видимый узел, содержащий точку.
// Узел выше, если у него больше z; при равенстве — если добавлен позже.
func (t *Tree) ElementAt(x, y float64) (NodeID, bool) {
	var best *node
	for _, n := range t.nodes {
		if n.hidden || !n.rect.Contains(x, y) {
			continue
		}
		if best == nil || n.z > best.z || (n.z == best.z && n.seq > best.seq) {
			best = n
		}
	}
	if best == nil {
		return 0, false
	}
	return best.id, true
}

// Parent возвращает родителя узла; 0 — нет родителя.
func (t *Tree) Parent(id NodeID) NodeID {
	if n, ok := t.nodes[id]; ok {
		return n.parent
	}
	return 0
}

// BoundaryOf возвращает пометку границы узла, если она есть.
func (t *Tree) BoundaryOf(id NodeID) (*Boundary, bool) {
	n, ok := t.nodes[id]
	if !ok || n.boundary == nil {
		return nil, false
	}
	return n.boundary, true
}
