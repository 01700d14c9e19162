package system

import (
	"math"
	"testing"

	"go-shatter/internal/component"
	"go-shatter/internal/config"
)

func testPhysics() Physics {
	return PhysicsFromTuning(config.DefaultTuning(), 600)
}

func sharedPhysics() *Physics {
	p := testPhysics()
	return &p
}

func falling(x, y, vx, vy float64) *component.Fragment {
	return &component.Fragment{
		Position:      component.Position{X: x, Y: y},
		Velocity:      component.Velocity{VX: vx, VY: vy},
		W:             10,
		H:             10,
		RotationSpeed: 0.1,
		State:         component.Falling,
	}
}

func TestPhysicsFromTuning(t *testing.T) {
	p := testPhysics()
	if p.Gravity != 0.5 || p.Friction != 0.99 {
		t.Fatalf("physics = %+v", p)
	}
	if p.Floor != 600+config.OffscreenSlack {
		t.Fatalf("Floor = %v, want %v", p.Floor, 600+config.OffscreenSlack)
	}
}

func TestGravityAccumulatesAndFrictionDecays(t *testing.T) {
	p := Physics{Gravity: 0.5, Friction: 0.99, Floor: 1e12}
	const v0, vx0 = -6.0, 4.0
	f := falling(0, 0, vx0, v0)

	for tick := 1; tick <= 120; tick++ {
		if !p.Step(f) {
			t.Fatalf("fragment left the screen at tick %d", tick)
		}
		wantVY := v0 + 0.5*float64(tick)
		wantVX := vx0 * math.Pow(0.99, float64(tick))
		if math.Abs(f.VY-wantVY) > 1e-9 {
			t.Fatalf("tick %d: vy = %v, want %v", tick, f.VY, wantVY)
		}
		if math.Abs(f.VX-wantVX) > 1e-9 {
			t.Fatalf("tick %d: vx = %v, want %v", tick, f.VX, wantVX)
		}
	}
	if math.Abs(f.Rotation-12) > 1e-9 {
		t.Fatalf("rotation = %v, want 12", f.Rotation)
	}
}

func TestStepUsesUpdatedVelocity(t *testing.T) {
	p := Physics{Gravity: 0.5, Friction: 0.5, Floor: 1000}
	f := falling(10, 20, 2, -4)
	p.Step(f)
	if f.VX != 1 || f.VY != -3.5 || f.X != 11 || f.Y != 16.5 {
		t.Fatalf("after one step: %+v", f)
	}
}

func TestStepRetiresBelowFloor(t *testing.T) {
	p := Physics{Gravity: 0.5, Friction: 1, Floor: 100}
	f := falling(0, 99, 0, 0.9)
	if p.Step(f) {
		t.Fatalf("fragment at y=%v should be gone", f.Y)
	}
	if f.State != component.Gone {
		t.Fatalf("state = %v, want gone", f.State)
	}
}

func TestGoneFragmentIsNeverUpdated(t *testing.T) {
	p := testPhysics()
	f := falling(0, 10000, 3, 3)
	p.Step(f)
	if f.State != component.Gone {
		t.Fatal("fragment should be gone")
	}
	snapshot := *f
	for i := 0; i < 10; i++ {
		p.Step(f)
	}
	if *f != snapshot {
		t.Fatalf("gone fragment changed: %+v -> %+v", snapshot, *f)
	}
	if f.Drop() {
		t.Fatal("gone fragment dropped again")
	}
}

func TestVisibleFragmentDoesNotMove(t *testing.T) {
	p := testPhysics()
	f := falling(5, 5, 1, 1)
	f.State = component.Visible
	if !p.Step(f) {
		t.Fatal("visible fragment reported gone")
	}
	if f.X != 5 || f.Y != 5 {
		t.Fatalf("visible fragment moved to %v,%v", f.X, f.Y)
	}
}

func TestFragmentSetRunsUntilQuiescent(t *testing.T) {
	s := NewFrameScheduler()
	set := NewFragmentSet(&Physics{Gravity: 0.5, Friction: 0.99, Floor: 200}, s)
	settled := 0
	set.OnSettled = func() { settled++ }

	set.Launch(falling(0, 0, 1, -5))
	if !set.Active() {
		t.Fatal("launch did not request a tick")
	}

	frames := 0
	for set.Active() && frames < 1000 {
		s.Advance(frame)
		frames++
	}
	if set.Active() {
		t.Fatal("set never went idle")
	}
	if set.Len() != 0 || set.FallingCount() != 0 {
		t.Fatalf("Len=%d Falling=%d, want 0/0", set.Len(), set.FallingCount())
	}
	if settled != 1 {
		t.Fatalf("OnSettled called %d times, want 1", settled)
	}
	if ticks, _ := s.Pending(); ticks != 0 {
		t.Fatalf("idle set left %d ticks pending", ticks)
	}
}

func TestFragmentSetResumesOnNextLaunch(t *testing.T) {
	s := NewFrameScheduler()
	set := NewFragmentSet(&Physics{Gravity: 0.5, Friction: 1, Floor: 50}, s)
	set.Launch(falling(0, 49, 0, 5))
	s.Advance(frame)
	if set.Active() {
		t.Fatal("set still active after last fragment left")
	}

	set.Launch(falling(0, 0, 0, 0))
	if !set.Active() {
		t.Fatal("set did not resume on new launch")
	}
}

func TestFragmentSetVisibleFragmentsDoNotTick(t *testing.T) {
	s := NewFrameScheduler()
	set := NewFragmentSet(sharedPhysics(), s)
	tile := falling(0, 0, 0, 0)
	tile.State = component.Visible
	set.Add(tile)
	if set.Active() {
		t.Fatal("visible fragment requested a tick")
	}
	if got := len(set.Visible()); got != 1 {
		t.Fatalf("Visible() = %d, want 1", got)
	}

	if !set.Drop(tile) {
		t.Fatal("Drop(visible) = false")
	}
	if set.Drop(tile) {
		t.Fatal("Drop(falling) = true")
	}
	if !set.Active() || set.FallingCount() != 1 {
		t.Fatalf("after Drop Active=%v Falling=%d", set.Active(), set.FallingCount())
	}
}

func TestFragmentSetSingleTickForManyFragments(t *testing.T) {
	s := NewFrameScheduler()
	set := NewFragmentSet(sharedPhysics(), s)
	for i := 0; i < 16; i++ {
		set.Launch(falling(float64(i), 0, 0, -1))
	}
	if ticks, _ := s.Pending(); ticks != 1 {
		t.Fatalf("pending ticks = %d, want 1", ticks)
	}
}

func TestDisposeCancelsPendingTick(t *testing.T) {
	s := NewFrameScheduler()
	set := NewFragmentSet(sharedPhysics(), s)
	f := falling(0, 0, 0, -1)
	set.Launch(f)
	set.Dispose()

	if ticks, _ := s.Pending(); ticks != 0 {
		t.Fatalf("pending ticks after Dispose = %d", ticks)
	}
	y := f.Y
	s.Advance(frame)
	if f.Y != y {
		t.Fatal("disposed fragment moved")
	}
	if f.State != component.Gone {
		t.Fatalf("state after Dispose = %v, want gone", f.State)
	}

	set.Launch(falling(0, 0, 0, -1))
	if set.Len() != 0 || set.Active() {
		t.Fatal("disposed set accepted a new fragment")
	}
}

func TestClearKeepsSetUsable(t *testing.T) {
	s := NewFrameScheduler()
	set := NewFragmentSet(sharedPhysics(), s)
	set.Launch(falling(0, 0, 0, -1))
	set.Clear()
	if set.Len() != 0 || set.Active() {
		t.Fatal("Clear left fragments or a tick")
	}
	set.Launch(falling(0, 0, 0, -1))
	if set.Len() != 1 || !set.Active() {
		t.Fatal("set not usable after Clear")
	}
}

func TestRemoveSingleFragment(t *testing.T) {
	s := NewFrameScheduler()
	set := NewFragmentSet(sharedPhysics(), s)
	a := falling(0, 0, 0, -1)
	b := falling(0, 0, 0, -1)
	set.Launch(a)
	set.Launch(b)

	if !set.Remove(a) {
		t.Fatal("Remove(a) = false")
	}
	if a.State != component.Gone || set.Len() != 1 || set.FallingCount() != 1 || !set.Active() {
		t.Fatalf("after first Remove: state=%v len=%d falling=%d active=%v",
			a.State, set.Len(), set.FallingCount(), set.Active())
	}
	if set.Remove(a) {
		t.Fatal("second Remove(a) = true")
	}
	set.Remove(b)
	if set.Active() {
		t.Fatal("tick still pending with nothing falling")
	}
	if ticks, _ := s.Pending(); ticks != 0 {
		t.Fatalf("pending ticks = %d", ticks)
	}
}

func TestFragmentSetFollowsFloorChange(t *testing.T) {
	s := NewFrameScheduler()
	physics := &Physics{Gravity: 0, Friction: 1, Floor: 100}
	set := NewFragmentSet(physics, s)
	f := falling(0, 90, 0, 20)
	set.Launch(f)

	physics.Floor = 1000
	s.Advance(frame)
	if f.State != component.Falling || f.Y != 110 {
		t.Fatalf("after floor moved down: state=%v y=%v", f.State, f.Y)
	}
}
