// internal/types/types.go
package types

import "fmt"

// UnitID — стабильный идентификатор разрушаемого блока контента.
// Единственный ключ в реестре разрушений.
type UnitID string

// FragmentID — идентификатор осколка внутри одного блока.
type FragmentID uint64

// UnitKind — вид блока контента.
type UnitKind string

const (
	KindWord  UnitKind = "word"
	KindImage UnitKind = "image"
	KindLogo  UnitKind = "logo"
)

// WeaponKind — вид оружия, которым сделан выстрел.
type WeaponKind string

const (
	WeaponPrecision WeaponKind = "precision"
	WeaponSpread    WeaponKind = "spread"
	WeaponExplosive WeaponKind = "explosive"
)

// Weapons — все виды оружия в порядке переключения.
var Weapons = []WeaponKind{WeaponPrecision, WeaponSpread, WeaponExplosive}

// Valid проверяет, что вид оружия известен.
func (w WeaponKind) Valid() bool {
	switch w {
	case WeaponPrecision, WeaponSpread, WeaponExplosive:
		return true
	}
	return false
}

// Next возвращает следующее оружие по кругу.
func (w WeaponKind) Next() WeaponKind {
	for i, k := range Weapons {
		if k == w {
			return Weapons[(i+1)%len(Weapons)]
		}
	}
	return WeaponPrecision
}

// WordID строит id слова по схеме word-<ownerId>-<index>.
func WordID(owner UnitID, index int) UnitID {
	return UnitID(fmt.Sprintf("word-%s-%d", owner, index))
}

// ImageID строит id изображения по слагу.
func ImageID(slug string) UnitID {
	return UnitID("image-" + slug)
}
