package tui

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"go-shatter/internal/assets"
	"go-shatter/internal/types"
)

// Sound — чем терминал озвучивает выстрел.
type Sound interface {
	Play(weapon types.WeaponKind)
}

// ShotStreamer собирает звук выстрела: синтезированный щелчок и
// короткий синус под ним.
func ShotStreamer(weapon types.WeaponKind, sr beep.SampleRate) beep.Streamer {
	samples := assets.ShotSamples(weapon, int(sr))
	pos := 0
	click := beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copy2(buf, samples[pos:])
		pos += n
		return n, true
	})

	length := sr.N(assets.ShotLength(weapon))
	tone, err := generators.SineTone(sr, toneFor(weapon))
	if err != nil {
		return click
	}
	return beep.Mix(click, beep.Take(length, &volume{s: tone, gain: 0.15}))
}

func toneFor(weapon types.WeaponKind) float64 {
	switch weapon {
	case types.WeaponSpread:
		return 330
	case types.WeaponExplosive:
		return 110
	}
	return 660
}

func copy2(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}

// volume приглушает поток.
type volume struct {
	s    beep.Streamer
	gain float64
}

func (v *volume) Stream(samples [][2]float64) (int, bool) {
	n, ok := v.s.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= v.gain
		samples[i][1] *= v.gain
	}
	return n, ok
}

func (v *volume) Err() error {
	return v.s.Err()
}
