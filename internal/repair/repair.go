// Package repair возвращает разрушенную страницу в исходный вид.
package repair

import (
	"log"

	"go-shatter/internal/event"
	"go-shatter/internal/registry"
	"go-shatter/internal/types"
)

// Reconciler — блок, который умеет привести себя к реестру.
type Reconciler interface {
	Reconcile()
}

// Coordinator чинит реестр и следит, чтобы каждый зарегистрированный
// блок пересмотрел своё состояние в той же рассылке. Летящие осколки
// восстановленных блоков просто исчезают.
type Coordinator struct {
	registry *registry.Registry
	units    []Reconciler
	sub      *event.Subscription
}

// New создаёт координатор. Если dispatcher не nil, координатор
// подписывается на изменения реестра.
func New(reg *registry.Registry, dispatcher *event.Dispatcher) *Coordinator {
	c := &Coordinator{registry: reg}
	if dispatcher != nil {
		c.sub = dispatcher.SubscribeFunc(event.RegistryChanged, c.onChange)
	}
	return c
}

func (c *Coordinator) onChange(e *event.Event) {
	change, ok := e.Data.(event.RegistryChange)
	if !ok || change.Destroyed {
		return
	}
	c.ReconcileAll()
}

// Register добавляет блок в обход.
func (c *Coordinator) Register(r Reconciler) {
	c.units = append(c.units, r)
}

// Unregister убирает блок; неизвестный блок игнорируется.
func (c *Coordinator) Unregister(r Reconciler) {
	for i, u := range c.units {
		if u == r {
			c.units = append(c.units[:i:i], c.units[i+1:]...)
			return
		}
	}
}

// Len — число зарегистрированных блоков.
func (c *Coordinator) Len() int {
	return len(c.units)
}

// RepairAll чинит всё одним переходом реестра.
func (c *Coordinator) RepairAll() {
	if !c.registry.HasDestruction() {
		return
	}
	log.Printf("[Repair] Restoring %d words, %d images/logos",
		c.registry.Count(types.KindWord), c.registry.Count(types.KindImage))
	c.registry.RepairAll()
	if c.sub == nil {
		c.ReconcileAll()
	}
}

// Repair чинит один блок.
func (c *Coordinator) Repair(kind types.UnitKind, id types.UnitID) {
	c.registry.Repair(kind, id)
	if c.sub == nil {
		c.ReconcileAll()
	}
}

// ReconcileAll просит каждый блок свериться с реестром.
// Вызывается и раз в кадр, чтобы расхождение жило не дольше кадра.
func (c *Coordinator) ReconcileAll() {
	units := c.units
	for _, u := range units {
		u.Reconcile()
	}
}

// Close отписывает координатор.
func (c *Coordinator) Close() {
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
}
