// internal/app/decals.go
package app

import "go-shatter/internal/types"

// Decal — след от пули там, где выстрел никого не задел.
type Decal struct {
	X, Y   float64
	Weapon types.WeaponKind
	Frame  uint64
}

// Decals — кольцевой буфер следов: старые вытесняются новыми.
type Decals struct {
	items []Decal
	next  int
	full  bool
}

// NewDecals создаёт буфер на capacity следов.
func NewDecals(capacity int) *Decals {
	if capacity < 1 {
		capacity = 1
	}
	return &Decals{items: make([]Decal, capacity)}
}

func (d *Decals) Add(decal Decal) {
	d.items[d.next] = decal
	d.next = (d.next + 1) % len(d.items)
	if d.next == 0 {
		d.full = true
	}
}

// All возвращает следы от старых к новым.
func (d *Decals) All() []Decal {
	if !d.full {
		out := make([]Decal, d.next)
		copy(out, d.items[:d.next])
		return out
	}
	out := make([]Decal, 0, len(d.items))
	out = append(out, d.items[d.next:]...)
	return append(out, d.items[:d.next]...)
}

func (d *Decals) Len() int {
	if d.full {
		return len(d.items)
	}
	return d.next
}

func (d *Decals) Clear() {
	d.next = 0
	d.full = false
}
