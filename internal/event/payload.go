package event

import "go-shatter/internal/types"

// Shot — выстрел в координатах окна (пиксели). Живёт только одну рассылку.
type Shot struct {
	X, Y   float64
	Weapon types.WeaponKind
}

// RegistryChange описывает одно видимое изменение реестра разрушений.
type RegistryChange struct {
	Kind      types.UnitKind // пусто для RepairAll
	ID        types.UnitID   // пусто для RepairAll
	Destroyed bool
	All       bool // true для RepairAll
	Version   uint64
}

// NewShot собирает событие выстрела.
func NewShot(x, y float64, weapon types.WeaponKind) *Event {
	return &Event{Type: ShotFired, Data: Shot{X: x, Y: y, Weapon: weapon}}
}
