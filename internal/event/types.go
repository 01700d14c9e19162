// internal/event/types.go
package event

// События интерфейса: на них подписываются звук, HUD и сохранение настроек.
const (
	ModeChanged   EventType = "mode_changed"   // Режим стрельбы вкл/выкл, Data: bool
	WeaponChanged EventType = "weapon_changed" // Выбрано оружие, Data: types.WeaponKind
	DecalPlaced   EventType = "decal_placed"   // Промах оставил след, Data: Shot

	RepairRequested EventType = "repair_requested" // Кнопка или клавиша "починить всё"
)
