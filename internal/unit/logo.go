package unit

import (
	"image/color"

	"go-shatter/internal/component"
	"go-shatter/internal/event"
	"go-shatter/internal/hit"
	"go-shatter/internal/types"
)

// Logo — логотип технологии, разлетается одним куском.
type Logo struct {
	base
	Label string
	Path  string
	Color color.RGBA

	destroyed bool
	piece     *component.Fragment
}

// NewLogo создаёт логотип.
func NewLogo(id types.UnitID, label, path string, c color.RGBA) *Logo {
	return &Logo{base: base{id: id}, Label: label, Path: path, Color: c}
}

func (l *Logo) Kind() types.UnitKind {
	return types.KindLogo
}

// Destroyed — локальная копия состояния реестра.
func (l *Logo) Destroyed() bool {
	return l.destroyed
}

func (l *Logo) Mount(env *Env) {
	l.mount(env, l, &hit.Boundary{Kind: types.KindLogo, ID: l.id})
	l.Reconcile()
}

func (l *Logo) Dispose() {
	l.dispose()
	l.piece = nil
}

// SetRect задаёт место логотипа на странице.
func (l *Logo) SetRect(r component.Rect) {
	l.rect = r
	if l.mounted() {
		l.env.Tree.Move(l.node, r)
	}
}

func (l *Logo) OnEvent(e *event.Event) {
	shot, h, ok := l.resolve(e)
	if !ok || h.Kind != types.KindLogo || h.ID != l.id {
		return
	}
	e.StopPropagation()

	f := l.env.Fragmenter.Logo(l.id, l.rect, shot.Weapon)
	if f == nil {
		return
	}
	l.destroyed = true
	l.piece = f
	l.fragments.Launch(f)
	l.env.Registry.Destroy(types.KindLogo, l.id)
	l.shattered()
}

func (l *Logo) Reconcile() {
	if !l.mounted() {
		return
	}
	destroyed := l.env.Registry.IsDestroyed(types.KindLogo, l.id)
	if destroyed == l.destroyed {
		return
	}
	l.destroyed = destroyed
	if !destroyed && l.piece != nil {
		l.fragments.Remove(l.piece)
		l.piece = nil
	}
}
