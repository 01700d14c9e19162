// Package registry хранит, какие блоки контента сейчас разрушены.
//
// Один экземпляр на приложение, передаётся явно всем, кому нужен.
// Все операции тотальны: неизвестный id просто "не разрушен".
package registry

import (
	"sort"

	"go-shatter/internal/event"
	"go-shatter/internal/types"
)

// Registry — два множества id: слова и изображения (логотипы живут
// в множестве изображений). Не потокобезопасен: все вызовы идут из
// цикла обновления.
type Registry struct {
	words      map[types.UnitID]struct{}
	images     map[types.UnitID]struct{}
	version    uint64
	dispatcher *event.Dispatcher
}

// New создаёт пустой реестр. dispatcher может быть nil.
func New(dispatcher *event.Dispatcher) *Registry {
	return &Registry{
		words:      make(map[types.UnitID]struct{}),
		images:     make(map[types.UnitID]struct{}),
		dispatcher: dispatcher,
	}
}

func (r *Registry) set(kind types.UnitKind) map[types.UnitID]struct{} {
	if kind == types.KindWord {
		return r.words
	}
	return r.images
}

// Destroy помечает блок разрушенным. Повторный вызов ничего не меняет.
func (r *Registry) Destroy(kind types.UnitKind, id types.UnitID) {
	s := r.set(kind)
	if _, ok := s[id]; ok {
		return
	}
	s[id] = struct{}{}
	r.changed(event.RegistryChange{Kind: kind, ID: id, Destroyed: true})
}

// Repair снимает отметку; для целого блока ничего не делает.
func (r *Registry) Repair(kind types.UnitKind, id types.UnitID) {
	s := r.set(kind)
	if _, ok := s[id]; !ok {
		return
	}
	delete(s, id)
	r.changed(event.RegistryChange{Kind: kind, ID: id})
}

// RepairAll очищает оба множества одним переходом и шлёт одно событие.
func (r *Registry) RepairAll() {
	if !r.HasDestruction() {
		return
	}
	r.words = make(map[types.UnitID]struct{})
	r.images = make(map[types.UnitID]struct{})
	r.changed(event.RegistryChange{All: true})
}

// IsDestroyed сообщает, разрушен ли блок.
func (r *Registry) IsDestroyed(kind types.UnitKind, id types.UnitID) bool {
	_, ok := r.set(kind)[id]
	return ok
}

// HasDestruction — есть ли хоть что-то разрушенное.
func (r *Registry) HasDestruction() bool {
	return len(r.words)+len(r.images) > 0
}

// Count возвращает число разрушенных блоков вида kind.
func (r *Registry) Count(kind types.UnitKind) int {
	return len(r.set(kind))
}

// DestroyedIDs возвращает отсортированный список разрушенных id.
func (r *Registry) DestroyedIDs(kind types.UnitKind) []types.UnitID {
	s := r.set(kind)
	ids := make([]types.UnitID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Version растёт на каждом видимом изменении.
func (r *Registry) Version() uint64 {
	return r.version
}

func (r *Registry) changed(change event.RegistryChange) {
	r.version++
	change.Version = r.version
	if r.dispatcher != nil {
		r.dispatcher.Dispatch(&event.Event{Type: event.RegistryChanged, Data: change})
	}
}
