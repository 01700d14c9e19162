// internal/system/projectile.go
package system

import (
	"go-shatter/internal/component"
	"go-shatter/internal/config"
)

// Physics — параметры шага симуляции.
type Physics struct {
	Gravity  float64
	Friction float64
	// Floor — y, ниже которого осколок уходит (высота окна + запас).
	Floor float64
}

// PhysicsFromTuning собирает параметры для окна высотой viewportHeight.
func PhysicsFromTuning(t *config.Tuning, viewportHeight float64) Physics {
	return Physics{
		Gravity:  t.Physics.Gravity,
		Friction: t.Physics.Friction,
		Floor:    viewportHeight + t.Physics.OffscreenSlack,
	}
}

// Step продвигает падающий осколок на один кадр. Возвращает false,
// когда осколок ушёл за нижнюю границу (он помечается Gone).
// Видимые и ушедшие осколки не трогаются.
func (p Physics) Step(f *component.Fragment) bool {
	if f.State != component.Falling {
		return f.State == component.Visible
	}
	f.VY += p.Gravity
	f.VX *= p.Friction
	f.X += f.VX
	f.Y += f.VY
	f.Rotation += f.RotationSpeed
	if f.Y > p.Floor {
		f.Retire()
		return false
	}
	return true
}

// FragmentSet — осколки одного блока и его собственный цикл тиков.
// Тик запрашивается, только пока есть падающие осколки.
type FragmentSet struct {
	physics   *Physics
	scheduler Scheduler
	fragments []*component.Fragment
	falling   int
	tick      Handle
	disposed  bool

	// OnSettled вызывается, когда последний падающий осколок ушёл.
	OnSettled func()
}

// NewFragmentSet создаёт пустой набор. physics общий для всех наборов
// страницы: новый пол после смены размера окна действует сразу.
func NewFragmentSet(physics *Physics, scheduler Scheduler) *FragmentSet {
	return &FragmentSet{physics: physics, scheduler: scheduler}
}

// Add добавляет осколок в его текущем состоянии. Падающий осколок
// сразу запускает цикл.
func (s *FragmentSet) Add(f *component.Fragment) {
	if s.disposed || f.State == component.Gone {
		return
	}
	s.fragments = append(s.fragments, f)
	if f.State == component.Falling {
		s.falling++
		s.ensureTick()
	}
}

// Launch добавляет осколок и переводит его в падение.
func (s *FragmentSet) Launch(f *component.Fragment) {
	f.Drop()
	s.Add(f)
}

// Drop переводит уже добавленный видимый осколок в падение.
func (s *FragmentSet) Drop(f *component.Fragment) bool {
	if s.disposed || !f.Drop() {
		return false
	}
	s.falling++
	s.ensureTick()
	return true
}

func (s *FragmentSet) ensureTick() {
	if s.tick != 0 || s.falling == 0 || s.disposed {
		return
	}
	s.tick = s.scheduler.RequestTick(s.step)
}

func (s *FragmentSet) step() {
	s.tick = 0
	if s.disposed {
		return
	}
	kept := s.fragments[:0]
	for _, f := range s.fragments {
		wasFalling := f.State == component.Falling
		if s.physics.Step(f) {
			kept = append(kept, f)
			continue
		}
		if wasFalling {
			s.falling--
		}
	}
	for i := len(kept); i < len(s.fragments); i++ {
		s.fragments[i] = nil
	}
	s.fragments = kept

	if s.falling > 0 {
		s.ensureTick()
		return
	}
	if s.OnSettled != nil {
		s.OnSettled()
	}
}

// Remove убирает один осколок без анимации. Если падающих больше нет,
// тик отменяется.
func (s *FragmentSet) Remove(f *component.Fragment) bool {
	for i, cur := range s.fragments {
		if cur != f {
			continue
		}
		if f.State == component.Falling {
			s.falling--
		}
		f.Retire()
		s.fragments = append(s.fragments[:i], s.fragments[i+1:]...)
		if s.falling == 0 && s.tick != 0 {
			s.scheduler.Cancel(s.tick)
			s.tick = 0
		}
		return true
	}
	return false
}

// Fragments возвращает живые (не ушедшие) осколки. Срез нельзя менять.
func (s *FragmentSet) Fragments() []*component.Fragment {
	return s.fragments
}

// Visible возвращает осколки, которые ещё не начали падать.
func (s *FragmentSet) Visible() []*component.Fragment {
	var out []*component.Fragment
	for _, f := range s.fragments {
		if f.State == component.Visible {
			out = append(out, f)
		}
	}
	return out
}

// Len — число живых осколков.
func (s *FragmentSet) Len() int {
	return len(s.fragments)
}

// FallingCount — число падающих осколков.
func (s *FragmentSet) FallingCount() int {
	return s.falling
}

// Active сообщает, запрошен ли следующий тик.
func (s *FragmentSet) Active() bool {
	return s.tick != 0
}

// Clear бросает все осколки без анимации и отменяет тик.
// Набор остаётся пригодным для новых осколков.
func (s *FragmentSet) Clear() {
	if s.tick != 0 {
		s.scheduler.Cancel(s.tick)
		s.tick = 0
	}
	for _, f := range s.fragments {
		f.Retire()
	}
	s.fragments = nil
	s.falling = 0
}

// Dispose — Clear плюс запрет на дальнейшее использование.
func (s *FragmentSet) Dispose() {
	s.Clear()
	s.disposed = true
}
