// internal/config/tuning.go
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning возвращается, если файл настройки содержит недопустимые значения.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning — подбираемые "на ощупь" константы эффекта разрушения.
// Значения по умолчанию совпадают с константами пакета; файл
// data/tuning.yaml может переопределить любое поле.
type Tuning struct {
	Physics PhysicsTuning `yaml:"physics"`
	Launch  LaunchTuning  `yaml:"launch"`
	Image   ImageTuning   `yaml:"image"`
	Spread  SpreadTuning  `yaml:"spread"`
}

// PhysicsTuning — параметры покадровой симуляции.
type PhysicsTuning struct {
	Gravity        float64 `yaml:"gravity"`
	Friction       float64 `yaml:"friction"`
	OffscreenSlack float64 `yaml:"offscreenSlack"`
}

// LaunchTuning — начальная кинематика осколков.
type LaunchTuning struct {
	VXRange float64 `yaml:"vxRange"`
	VYMin   float64 `yaml:"vyMin"`
	VYMax   float64 `yaml:"vyMax"`
	RotMin  float64 `yaml:"rotMin"`
	RotMax  float64 `yaml:"rotMax"`

	// Множители по виду оружия: ключи precision, spread, explosive.
	Weapon map[string]float64 `yaml:"weapon"`
	Tile   map[string]float64 `yaml:"tile"`
}

// ImageTuning — сетка плиток и стадии раскрытия изображения.
type ImageTuning struct {
	Cols       int           `yaml:"cols"`
	Rows       int           `yaml:"rows"`
	Overlap    float64       `yaml:"overlap"`
	Jitter     float64       `yaml:"jitter"`
	Cracking   time.Duration `yaml:"cracking"`
	Pixelating time.Duration `yaml:"pixelating"`
	Grace      time.Duration `yaml:"grace"`
}

// SpreadTuning — выбор соседей для разброса.
type SpreadTuning struct {
	OneNeighborP float64 `yaml:"oneNeighborP"`
	MaxWords     int     `yaml:"maxWords"`
}

// DefaultTuning возвращает настройки, собранные из констант пакета.
func DefaultTuning() *Tuning {
	return &Tuning{
		Physics: PhysicsTuning{
			Gravity:        Gravity,
			Friction:       Friction,
			OffscreenSlack: OffscreenSlack,
		},
		Launch: LaunchTuning{
			VXRange: BaseVXRange,
			VYMin:   BaseVYMin,
			VYMax:   BaseVYMax,
			RotMin:  BaseRotMin,
			RotMax:  BaseRotMax,
			Weapon:  copyMultipliers(WeaponMultipliers),
			Tile:    copyMultipliers(TileMultipliers),
		},
		Image: ImageTuning{
			Cols:       ImageGridCols,
			Rows:       ImageGridRows,
			Overlap:    TileOverlap,
			Jitter:     TileJitter,
			Cracking:   CrackingDuration,
			Pixelating: PixelatingDuration,
			Grace:      DestroyGrace,
		},
		Spread: SpreadTuning{
			OneNeighborP: SpreadExtraP,
			MaxWords:     MaxSpread,
		},
	}
}

func copyMultipliers(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// WeaponMultiplier возвращает множитель для слов и логотипов.
func (t *Tuning) WeaponMultiplier(weapon string) float64 {
	if m, ok := t.Launch.Weapon[weapon]; ok {
		return m
	}
	return 1.0
}

// TileMultiplier возвращает множитель для плиток изображения.
func (t *Tuning) TileMultiplier(weapon string) float64 {
	if m, ok := t.Launch.Tile[weapon]; ok {
		return m
	}
	return 1.0
}

// Validate проверяет согласованность значений.
func (t *Tuning) Validate() error {
	if t.Physics.Friction <= 0 || t.Physics.Friction > 1 {
		return fmt.Errorf("%w: friction %v must be in (0, 1]", ErrInvalidTuning, t.Physics.Friction)
	}
	if t.Physics.OffscreenSlack < 0 {
		return fmt.Errorf("%w: offscreenSlack must not be negative", ErrInvalidTuning)
	}
	if t.Launch.VYMin > t.Launch.VYMax {
		return fmt.Errorf("%w: vyMin %v > vyMax %v", ErrInvalidTuning, t.Launch.VYMin, t.Launch.VYMax)
	}
	if t.Launch.RotMin > t.Launch.RotMax {
		return fmt.Errorf("%w: rotMin %v > rotMax %v", ErrInvalidTuning, t.Launch.RotMin, t.Launch.RotMax)
	}
	if t.Image.Cols <= 0 || t.Image.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidTuning, t.Image.Cols, t.Image.Rows)
	}
	if t.Image.Jitter >= t.Image.Overlap && t.Image.Jitter > 0 {
		return fmt.Errorf("%w: jitter %v must be smaller than overlap %v", ErrInvalidTuning, t.Image.Jitter, t.Image.Overlap)
	}
	if t.Spread.OneNeighborP < 0 || t.Spread.OneNeighborP > 1 {
		return fmt.Errorf("%w: oneNeighborP %v", ErrInvalidTuning, t.Spread.OneNeighborP)
	}
	if t.Spread.MaxWords < 1 {
		return fmt.Errorf("%w: maxWords must be at least 1", ErrInvalidTuning)
	}
	return nil
}

// LoadTuning читает YAML поверх значений по умолчанию.
// Поля, отсутствующие в файле, сохраняют значения по умолчанию.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	t := DefaultTuning()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTuningOrDefault — как LoadTuning, но при любой ошибке
// пишет предупреждение и возвращает значения по умолчанию.
func LoadTuningOrDefault(path string) *Tuning {
	if path == "" {
		return DefaultTuning()
	}
	t, err := LoadTuning(path)
	if err != nil {
		log.Printf("[Tuning] Warning: %v (using defaults)", err)
		return DefaultTuning()
	}
	log.Printf("[Tuning] Loaded %s", path)
	return t
}
