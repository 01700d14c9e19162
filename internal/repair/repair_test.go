package repair

import (
	"testing"

	"go-shatter/internal/event"
	"go-shatter/internal/registry"
	"go-shatter/internal/types"
)

// mirror хранит локальную копию одного id и сверяет её с реестром.
type mirror struct {
	reg       *registry.Registry
	kind      types.UnitKind
	id        types.UnitID
	destroyed bool
	calls     int
}

func (m *mirror) Reconcile() {
	m.calls++
	m.destroyed = m.reg.IsDestroyed(m.kind, m.id)
}

func TestRepairAllReconcilesInSameDispatch(t *testing.T) {
	d := event.NewDispatcher()
	reg := registry.New(d)
	c := New(reg, d)

	word := &mirror{reg: reg, kind: types.KindWord, id: "word-a-0", destroyed: true}
	logo := &mirror{reg: reg, kind: types.KindLogo, id: "logo-go", destroyed: true}
	c.Register(word)
	c.Register(logo)
	reg.Destroy(types.KindWord, "word-a-0")
	reg.Destroy(types.KindLogo, "logo-go")

	c.RepairAll()
	if reg.HasDestruction() {
		t.Fatal("registry still has destruction")
	}
	if word.destroyed || logo.destroyed {
		t.Fatalf("mirrors not reconciled: word=%v logo=%v", word.destroyed, logo.destroyed)
	}
	if word.calls != 1 {
		t.Fatalf("word reconciled %d times, want 1", word.calls)
	}
}

func TestRepairAllOnCleanPageIsNoop(t *testing.T) {
	d := event.NewDispatcher()
	reg := registry.New(d)
	c := New(reg, d)
	m := &mirror{reg: reg, kind: types.KindWord, id: "w"}
	c.Register(m)

	version := reg.Version()
	c.RepairAll()
	if reg.Version() != version || m.calls != 0 {
		t.Fatalf("noop repair changed version or reconciled (%d calls)", m.calls)
	}
}

func TestRepairSingleUnit(t *testing.T) {
	d := event.NewDispatcher()
	reg := registry.New(d)
	c := New(reg, d)
	a := &mirror{reg: reg, kind: types.KindImage, id: "image-a"}
	b := &mirror{reg: reg, kind: types.KindImage, id: "image-b"}
	c.Register(a)
	c.Register(b)
	reg.Destroy(types.KindImage, "image-a")
	reg.Destroy(types.KindImage, "image-b")
	c.ReconcileAll()

	c.Repair(types.KindImage, "image-a")
	if a.destroyed || !b.destroyed {
		t.Fatalf("a=%v b=%v, want false/true", a.destroyed, b.destroyed)
	}
}

func TestWithoutDispatcher(t *testing.T) {
	reg := registry.New(nil)
	c := New(reg, nil)
	m := &mirror{reg: reg, kind: types.KindWord, id: "w"}
	c.Register(m)
	reg.Destroy(types.KindWord, "w")
	c.ReconcileAll()
	if !m.destroyed {
		t.Fatal("mirror missed destroy")
	}
	c.RepairAll()
	if m.destroyed {
		t.Fatal("mirror not reconciled after repair without dispatcher")
	}
}

func TestUnregisterAndClose(t *testing.T) {
	d := event.NewDispatcher()
	reg := registry.New(d)
	c := New(reg, d)
	m := &mirror{reg: reg, kind: types.KindWord, id: "w"}
	c.Register(m)
	c.Unregister(m)
	c.Unregister(m)
	if c.Len() != 0 {
		t.Fatalf("Len = %d after Unregister", c.Len())
	}

	c.Register(m)
	c.Close()
	reg.Destroy(types.KindWord, "w")
	reg.RepairAll()
	if m.calls != 0 {
		t.Fatalf("closed coordinator reconciled %d times", m.calls)
	}
}
