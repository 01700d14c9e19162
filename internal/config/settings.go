// internal/config/settings.go
package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings — пользовательские настройки между запусками.
// Состояние разрушений сюда не попадает: после перезапуска всё целое.
type Settings struct {
	Weapon        string `yaml:"weapon"`
	SoundEnabled  bool   `yaml:"soundEnabled"`
	StartShooting bool   `yaml:"startShooting"`
}

// DefaultSettings возвращает настройки по умолчанию.
func DefaultSettings() *Settings {
	return &Settings{
		Weapon:        "precision",
		SoundEnabled:  true,
		StartShooting: false,
	}
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsStore загружает и сохраняет Settings через gdata.
// Без менеджера gdata работает только в памяти.
type SettingsStore struct {
	manager  *gdata.Manager
	settings *Settings
}

// OpenSettingsStore открывает хранилище приложения appName.
// Если gdata недоступна, возвращается хранилище в памяти и ошибка для лога.
func OpenSettingsStore(appName string) (*SettingsStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewSettingsStore(nil), fmt.Errorf("failed to open settings storage: %w", err)
	}
	return NewSettingsStore(manager), nil
}

// NewSettingsStore создаёт хранилище и сразу пытается загрузить сохранённое.
func NewSettingsStore(manager *gdata.Manager) *SettingsStore {
	s := &SettingsStore{manager: manager, settings: DefaultSettings()}
	if err := s.Load(); err != nil {
		log.Printf("[Settings] Warning: %v (using defaults)", err)
	}
	return s
}

// Load читает настройки; отсутствие записи не ошибка.
func (s *SettingsStore) Load() error {
	if s.manager == nil {
		return nil
	}
	if !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.settings = loaded
	return nil
}

// Save записывает текущие настройки.
func (s *SettingsStore) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Get возвращает текущие настройки.
func (s *SettingsStore) Get() *Settings {
	return s.settings
}

// SetWeapon запоминает выбранное оружие (только в памяти, нужен Save).
func (s *SettingsStore) SetWeapon(weapon string) {
	s.settings.Weapon = weapon
}

// SetSoundEnabled включает или выключает звук выстрела.
func (s *SettingsStore) SetSoundEnabled(enabled bool) {
	s.settings.SoundEnabled = enabled
}

// SetStartShooting задаёт, начинать ли сразу в режиме стрельбы.
func (s *SettingsStore) SetStartShooting(enabled bool) {
	s.settings.StartShooting = enabled
}
