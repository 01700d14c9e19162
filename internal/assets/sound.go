package assets

import (
	"math"
	"time"

	"go-shatter/internal/types"
)

type shotVoice struct {
	length time.Duration
	tone   float64 // Гц
	decay  float64 // чем больше, тем суше щелчок
	noise  float64 // доля шума
}

var shotVoices = map[types.WeaponKind]shotVoice{
	types.WeaponPrecision: {length: 80 * time.Millisecond, tone: 220, decay: 45, noise: 0.6},
	types.WeaponSpread:    {length: 140 * time.Millisecond, tone: 150, decay: 28, noise: 0.75},
	types.WeaponExplosive: {length: 320 * time.Millisecond, tone: 65, decay: 11, noise: 0.85},
}

// ShotLength — длительность звука выстрела.
func ShotLength(weapon types.WeaponKind) time.Duration {
	v, ok := shotVoices[weapon]
	if !ok {
		v = shotVoices[types.WeaponPrecision]
	}
	return v.length
}

// ShotSamples синтезирует звук выстрела: затухающий шум поверх низкого
// тона. Моно, значения в [-1, 1], одинаковые от вызова к вызову.
func ShotSamples(weapon types.WeaponKind, sampleRate int) []float64 {
	v, ok := shotVoices[weapon]
	if !ok {
		v = shotVoices[types.WeaponPrecision]
	}
	n := int(float64(sampleRate) * v.length.Seconds())
	out := make([]float64, n)
	s := uint32(0x9e3779b9)
	for i := range out {
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t * v.decay)
		noise := float64(s)/math.MaxUint32*2 - 1
		tone := math.Sin(2 * math.Pi * v.tone * t)
		out[i] = env * (v.noise*noise + (1-v.noise)*tone) * 0.8
	}
	return out
}

// PCM16Stereo упаковывает моно-сэмплы в 16-битный стерео little-endian,
// как его ждёт ebiten/audio.
func PCM16Stereo(samples []float64) []byte {
	out := make([]byte, 0, len(samples)*4)
	for _, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		x := int16(v * math.MaxInt16)
		lo, hi := byte(x), byte(uint16(x)>>8)
		out = append(out, lo, hi, lo, hi)
	}
	return out
}
