// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06
	FrameTime    = time.Second / 60

	// Физика осколков, единицы — пиксели за кадр.
	Gravity        = 0.5
	Friction       = 0.99
	OffscreenSlack = 150.0 // запас под нижней границей экрана, чтобы осколок не "выскакивал"

	// Сетка плиток изображения
	ImageGridCols = 4
	ImageGridRows = 4
	TileOverlap   = 2.0 // перекрытие плиток в пикселях, чтобы не было швов
	TileJitter    = 1.0 // должно быть меньше TileOverlap
	PixelBlock    = 12  // размер "пикселя" на стадии pixelating
	CrackRays     = 7
	CrackSegments = 4

	CrackingDuration   = 200 * time.Millisecond
	PixelatingDuration = 300 * time.Millisecond
	DestroyGrace       = time.Second

	// Начальная кинематика осколка
	BaseVXRange  = 3.0
	BaseVYMin    = 4.0
	BaseVYMax    = 8.0
	BaseRotMin   = 0.05
	BaseRotMax   = 0.15
	SpreadExtraP = 0.7 // вероятность одного соседа вместо двух
	MaxSpread    = 3

	MaxBulletHoles = 64
	ClickCooldown  = 80 // мс между выстрелами

	PageMarginX  = 80.0
	PageMarginY  = 110.0
	BlockSpacing = 36.0
	LogoSize     = 72.0
	LogoSpacing  = 28.0

	ButtonY       = 30
	ButtonSize    = 16.0
	ButtonOffsetX = 40
)

// WeaponMultipliers — множители скорости и вращения для слов и логотипов.
var WeaponMultipliers = map[string]float64{
	"precision": 1.0,
	"spread":    1.3,
	"explosive": 1.5,
}

// TileMultipliers — множители для плиток изображения.
var TileMultipliers = map[string]float64{
	"precision": 1.0,
	"spread":    1.3,
	"explosive": 1.6,
}

var (
	BackgroundColor = color.RGBA{18, 18, 24, 255}
	TextColor       = color.RGBA{235, 235, 240, 255}
	AccentColor     = color.RGBA{255, 94, 58, 255}
	MutedColor      = color.RGBA{120, 120, 135, 255}
	CrackColor      = color.RGBA{250, 250, 250, 200}
	HoleColor       = color.RGBA{8, 8, 10, 230}
	HoleRimColor    = color.RGBA{90, 90, 100, 200}
	ButtonStroke    = color.RGBA{240, 240, 240, 255}
	WeaponColors    = []color.RGBA{
		{70, 130, 180, 230}, // precision
		{220, 160, 60, 230}, // spread
		{220, 60, 60, 230},  // explosive
	}
	ShootingOnColor  = color.RGBA{220, 60, 60, 230}
	ShootingOffColor = color.RGBA{90, 90, 100, 230}
	RepairColor      = color.RGBA{60, 180, 110, 230}
)
