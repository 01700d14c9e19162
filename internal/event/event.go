// internal/event/event.go
package event

// EventType — тип события
type EventType string

const (
	// ShotFired — выстрел по экрану, Data: Shot.
	ShotFired EventType = "shot_fired"
	// RegistryChanged — видимое изменение реестра разрушений, Data: RegistryChange.
	RegistryChanged EventType = "registry_changed"
	// UnitShattered — блок разбит (первые осколки), Data: types.UnitID.
	UnitShattered EventType = "unit_shattered"
)

// Event — структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны

	stopped bool
}

// StopPropagation запрещает вызов следующих подписчиков и обработчика по умолчанию.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped сообщает, была ли остановлена доставка.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(e *Event)
}

// ListenerFunc позволяет подписать обычную функцию.
type ListenerFunc func(e *Event)

// OnEvent реализует Listener.
func (f ListenerFunc) OnEvent(e *Event) { f(e) }

// Subscription — активная подписка. Cancel снимает её; повторный вызов безопасен.
type Subscription struct {
	d         *Dispatcher
	eventType EventType
	listener  Listener
	active    bool
}

// Cancel отписывает слушателя. После Cancel слушатель больше не вызывается,
// даже если отмена произошла посреди текущей рассылки.
func (s *Subscription) Cancel() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.d.remove(s)
}

// Active сообщает, действует ли подписка.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Dispatcher — диспетчер событий. Работает в одном потоке (цикл Update).
type Dispatcher struct {
	listeners map[EventType][]*Subscription
	fallbacks map[EventType]Listener
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]*Subscription),
		fallbacks: make(map[EventType]Listener),
	}
}

// Subscribe — подписка на событие. Слушатели вызываются в порядке подписки.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) *Subscription {
	sub := &Subscription{d: d, eventType: eventType, listener: listener, active: true}
	d.listeners[eventType] = append(d.listeners[eventType], sub)
	return sub
}

// SubscribeFunc — то же, что Subscribe, для функции.
func (d *Dispatcher) SubscribeFunc(eventType EventType, fn func(e *Event)) *Subscription {
	return d.Subscribe(eventType, ListenerFunc(fn))
}

// Unsubscribe — отписка по значению слушателя (первое совпадение).
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	for _, sub := range d.listeners[eventType] {
		if sub.listener == listener {
			sub.Cancel()
			return
		}
	}
}

// SetFallback задаёт обработчик по умолчанию: он вызывается после всех
// подписчиков, если никто не остановил событие. nil снимает обработчик.
func (d *Dispatcher) SetFallback(eventType EventType, listener Listener) {
	if listener == nil {
		delete(d.fallbacks, eventType)
		return
	}
	d.fallbacks[eventType] = listener
}

// Count возвращает число активных подписчиков на тип события.
func (d *Dispatcher) Count(eventType EventType) int {
	return len(d.listeners[eventType])
}

func (d *Dispatcher) remove(sub *Subscription) {
	subs := d.listeners[sub.eventType]
	for i, s := range subs {
		if s == sub {
			// Новый срез: идущая рассылка держит снимок старого.
			next := make([]*Subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			d.listeners[sub.eventType] = next
			return
		}
	}
}

// Dispatch — синхронная отправка события всем подписчикам.
// Подписавшиеся во время рассылки получат только следующие события.
func (d *Dispatcher) Dispatch(e *Event) {
	snapshot := d.listeners[e.Type]
	for _, sub := range snapshot {
		if e.stopped {
			return
		}
		if !sub.active {
			continue
		}
		sub.listener.OnEvent(e)
	}
	if e.stopped {
		return
	}
	if fb, ok := d.fallbacks[e.Type]; ok {
		fb.OnEvent(e)
	}
}
