// Package unit — разрушаемые блоки страницы: текст, изображения, логотипы.
//
// Каждый блок сам подписывается на выстрелы, сам решает, попали ли в него,
// и владеет своими осколками. Общее у блоков только то, что лежит в Env.
package unit

import (
	"go-shatter/internal/component"
	"go-shatter/internal/event"
	"go-shatter/internal/fragment"
	"go-shatter/internal/hit"
	"go-shatter/internal/registry"
	"go-shatter/internal/system"
	"go-shatter/internal/types"
)

// Env — общие сервисы, которые блок получает при монтировании.
type Env struct {
	Dispatcher *event.Dispatcher
	Registry   *registry.Registry
	Scheduler  system.Scheduler
	Tree       *hit.Tree
	Hits       hit.HitTester
	Fragmenter *fragment.Fragmenter
	Physics    *system.Physics
}

// Measurer меряет строку в пикселях для заданного стиля.
type Measurer interface {
	Measure(text string, style component.StyleSnapshot) (w, h float64)
}

// Unit — общий контракт разрушаемого блока.
type Unit interface {
	ID() types.UnitID
	Kind() types.UnitKind
	Mount(env *Env)
	Dispose()
	// Reconcile приводит локальное состояние к реестру.
	Reconcile()
	Bounds() component.Rect
	Fragments() []*component.Fragment
}

// base — общая часть блоков: подписка, узел дерева, набор осколков.
type base struct {
	id        types.UnitID
	env       *Env
	sub       *event.Subscription
	node      hit.NodeID
	rect      component.Rect
	fragments *system.FragmentSet
}

func (b *base) ID() types.UnitID {
	return b.id
}

func (b *base) Bounds() component.Rect {
	return b.rect
}

func (b *base) mounted() bool {
	return b.env != nil
}

func (b *base) mount(env *Env, listener event.Listener, boundary *hit.Boundary) {
	b.env = env
	b.fragments = system.NewFragmentSet(env.Physics, env.Scheduler)
	b.node = env.Tree.Add(0, b.rect, 0, boundary)
	b.sub = env.Dispatcher.Subscribe(event.ShotFired, listener)
}

func (b *base) dispose() {
	if !b.mounted() {
		return
	}
	b.sub.Cancel()
	b.fragments.Dispose()
	b.env.Tree.Remove(b.node)
	b.env = nil
}

// Fragments возвращает живые осколки блока.
func (b *base) Fragments() []*component.Fragment {
	if b.fragments == nil {
		return nil
	}
	return b.fragments.Fragments()
}

// resolve возвращает попадание из события выстрела.
func (b *base) resolve(e *event.Event) (event.Shot, hit.Hit, bool) {
	shot, ok := e.Data.(event.Shot)
	if !ok || !b.mounted() {
		return event.Shot{}, hit.Hit{}, false
	}
	h, ok := b.env.Hits.Resolve(shot.X, shot.Y)
	return shot, h, ok
}

func (b *base) shattered() {
	b.env.Dispatcher.Dispatch(&event.Event{Type: event.UnitShattered, Data: b.id})
}
