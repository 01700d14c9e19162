// internal/system/scheduler.go
package system

import (
	"sort"
	"time"
)

// Handle — идентификатор запланированного вызова. Нулевой Handle пустой.
type Handle uint64

// Scheduler — покадровые тики и отложенные вызовы. Любой владелец
// обязан отменить свои хэндлы при уничтожении.
type Scheduler interface {
	// RequestTick вызывает fn один раз на следующем кадре.
	RequestTick(fn func()) Handle
	// After вызывает fn, когда игровое время продвинется на d.
	After(d time.Duration, fn func()) Handle
	// Cancel отменяет вызов; неизвестный или уже выполненный хэндл игнорируется.
	Cancel(h Handle)
}

type timer struct {
	handle Handle
	due    time.Duration
	fn     func()
}

// FrameScheduler — Scheduler, которого двигает цикл Update: один Advance
// на отрисованный кадр. Симуляция шагает по кадрам, а не по часам.
type FrameScheduler struct {
	next   Handle
	now    time.Duration
	frame  uint64
	ticks  map[Handle]func()
	order  []Handle
	timers map[Handle]*timer
}

// NewFrameScheduler создаёт пустой планировщик.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		ticks:  make(map[Handle]func()),
		timers: make(map[Handle]*timer),
	}
}

func (s *FrameScheduler) allocate() Handle {
	s.next++
	return s.next
}

// RequestTick реализует Scheduler.
func (s *FrameScheduler) RequestTick(fn func()) Handle {
	h := s.allocate()
	s.ticks[h] = fn
	s.order = append(s.order, h)
	return h
}

// After реализует Scheduler.
func (s *FrameScheduler) After(d time.Duration, fn func()) Handle {
	h := s.allocate()
	s.timers[h] = &timer{handle: h, due: s.now + d, fn: fn}
	return h
}

// Cancel реализует Scheduler.
func (s *FrameScheduler) Cancel(h Handle) {
	delete(s.ticks, h)
	delete(s.timers, h)
}

// Now возвращает накопленное игровое время.
func (s *FrameScheduler) Now() time.Duration {
	return s.now
}

// Frame возвращает число выполненных кадров.
func (s *FrameScheduler) Frame() uint64 {
	return s.frame
}

// Pending возвращает число ожидающих тиков и таймеров.
func (s *FrameScheduler) Pending() (ticks, timers int) {
	return len(s.ticks), len(s.timers)
}

// Advance продвигает время на dt и выполняет один кадр: сначала
// наступившие таймеры (по сроку), затем тики, запрошенные до этого кадра.
// Тики, запрошенные во время кадра, выполнятся на следующем.
func (s *FrameScheduler) Advance(dt time.Duration) {
	s.now += dt
	s.frame++

	var due []*timer
	for _, t := range s.timers {
		if t.due <= s.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].handle < due[j].handle
	})
	for _, t := range due {
		// Таймер мог быть отменён предыдущим таймером этого же кадра.
		if _, ok := s.timers[t.handle]; !ok {
			continue
		}
		delete(s.timers, t.handle)
		t.fn()
	}

	order := s.order
	s.order = nil
	for _, h := range order {
		fn, ok := s.ticks[h]
		if !ok {
			continue
		}
		delete(s.ticks, h)
		fn()
	}
}
