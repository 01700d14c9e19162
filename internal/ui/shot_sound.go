// internal/ui/shot_sound.go
package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"go-shatter/internal/assets"
	"go-shatter/internal/types"
)

const sampleRate = 44100

// ShotSound — звук выстрела для каждого оружия.
type ShotSound struct {
	Enabled bool
	context *audio.Context
	players map[types.WeaponKind]*audio.Player
}

// NewShotSound заранее синтезирует звук для каждого оружия.
func NewShotSound(enabled bool) *ShotSound {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	s := &ShotSound{Enabled: enabled, context: ctx, players: make(map[types.WeaponKind]*audio.Player)}
	for _, w := range types.Weapons {
		pcm := assets.PCM16Stereo(assets.ShotSamples(w, ctx.SampleRate()))
		s.players[w] = ctx.NewPlayerFromBytes(pcm)
	}
	return s
}

// Play играет звук оружия с начала. Выстрел, попавший в блок,
// останавливает событие, поэтому звук вызывается напрямую.
func (s *ShotSound) Play(weapon types.WeaponKind) {
	if !s.Enabled {
		return
	}
	p, ok := s.players[weapon]
	if !ok {
		return
	}
	if err := p.SetPosition(0); err != nil {
		log.Printf("[Sound] rewind: %v", err)
		return
	}
	p.Play()
}

func (s *ShotSound) Close() {
	for _, p := range s.players {
		p.Close()
	}
}
