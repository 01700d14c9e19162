package state

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordingState записывает вызовы в общий журнал.
type recordingState struct {
	name    string
	overlay bool
	log     *[]string
}

func (r *recordingState) Enter()             { *r.log = append(*r.log, r.name+".enter") }
func (r *recordingState) Exit()              { *r.log = append(*r.log, r.name+".exit") }
func (r *recordingState) Update(float64)     { *r.log = append(*r.log, r.name+".update") }
func (r *recordingState) Draw(*ebiten.Image) { *r.log = append(*r.log, r.name+".draw") }
func (r *recordingState) IsOverlay() bool    { return r.overlay }

type pausable struct{ paused bool }

func (p *pausable) SetPaused(v bool) { p.paused = v }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSetStateReplacesWholeStack(t *testing.T) {
	var log []string
	sm := NewStateMachine()
	menu := &recordingState{name: "menu", log: &log}
	page := &recordingState{name: "page", log: &log}
	pause := &recordingState{name: "pause", overlay: true, log: &log}

	sm.SetState(menu)
	sm.SetState(page)
	sm.Push(pause)
	sm.SetState(menu)

	want := []string{"menu.enter", "menu.exit", "page.enter", "pause.enter", "pause.exit", "page.exit", "menu.enter"}
	if !equal(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	if sm.Depth() != 1 || sm.Current() != menu {
		t.Fatalf("depth = %d, current = %v", sm.Depth(), sm.Current())
	}
}

func TestPushKeepsPageAliveUnderOverlay(t *testing.T) {
	var log []string
	sm := NewStateMachine()
	page := &recordingState{name: "page", log: &log}
	pause := &recordingState{name: "pause", overlay: true, log: &log}
	sm.SetState(page)
	sm.Push(pause)
	log = nil

	sm.Update(0.016)
	sm.Draw(nil)
	want := []string{"pause.update", "page.draw", "pause.draw"}
	if !equal(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}

	log = nil
	sm.Pop()
	if !equal(log, []string{"pause.exit"}) || sm.Current() != page {
		t.Fatalf("after Pop log = %v current = %v", log, sm.Current())
	}
}

func TestPopNeverEmptiesTheMachine(t *testing.T) {
	var log []string
	sm := NewStateMachine()
	sm.Pop()
	page := &recordingState{name: "page", log: &log}
	sm.SetState(page)
	sm.Pop()
	if sm.Current() != page {
		t.Fatal("Pop removed the last state")
	}
}

func TestOpaqueStateHidesLowerOnes(t *testing.T) {
	var log []string
	sm := NewStateMachine()
	sm.SetState(&recordingState{name: "page", log: &log})
	sm.Push(&recordingState{name: "help", log: &log})
	log = nil
	sm.Draw(nil)
	if !equal(log, []string{"help.draw"}) {
		t.Fatalf("log = %v", log)
	}
}

func TestPauseStateFreezesTargetWhileOnStack(t *testing.T) {
	var log []string
	sm := NewStateMachine()
	sm.SetState(&recordingState{name: "page", log: &log})
	target := &pausable{}

	sm.Push(NewPauseState(sm, target, nil))
	if !target.paused {
		t.Fatal("target not paused on Push")
	}
	sm.Pop()
	if target.paused {
		t.Fatal("target still paused after Pop")
	}
}
