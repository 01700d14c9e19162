package render

import (
	"hash/fnv"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-shatter/internal/app"
	"go-shatter/internal/assets"
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/types"
	"go-shatter/internal/unit"
)

// texture — изображение, подогнанное под прямоугольник на странице.
type texture struct {
	w, h      int
	intact    *ebiten.Image
	pixelated *ebiten.Image
}

// PageRenderer рисует разрушаемую страницу: слова, изображения по стадиям,
// логотипы, летящие осколки и следы от пуль.
type PageRenderer struct {
	fonts    *Fonts
	images   *assets.ImageManager
	colors   *PageColors
	textures map[types.UnitID]*texture
	logos    map[types.UnitID]*ebiten.Image
	words    map[types.FragmentID]*ebiten.Image
	alive    map[types.FragmentID]bool
}

func NewPageRenderer(fonts *Fonts, images *assets.ImageManager, colors *PageColors) *PageRenderer {
	return &PageRenderer{
		fonts:    fonts,
		images:   images,
		colors:   colors,
		textures: make(map[types.UnitID]*texture),
		logos:    make(map[types.UnitID]*ebiten.Image),
		words:    make(map[types.FragmentID]*ebiten.Image),
		alive:    make(map[types.FragmentID]bool),
	}
}

// Draw рисует страницу целиком. Осколки рисуются поверх всего
// содержимого, чтобы падающее не пряталось за целым.
func (r *PageRenderer) Draw(screen *ebiten.Image, site *app.Site) {
	screen.Fill(r.colors.BackgroundColor)

	for _, d := range site.Decals() {
		r.drawDecal(screen, d)
	}
	for _, b := range site.TextBlocks() {
		r.drawTextBlock(screen, b)
	}
	for _, img := range site.Images() {
		r.drawImage(screen, img)
	}
	for _, l := range site.Logos() {
		if !l.Destroyed() {
			r.drawLogoAt(screen, l, nil)
		}
	}

	clear(r.alive)
	for _, img := range site.Images() {
		r.drawFallingTiles(screen, img)
	}
	for _, l := range site.Logos() {
		for _, f := range l.Fragments() {
			if f.State == component.Falling {
				r.drawLogoAt(screen, l, f)
			}
		}
	}
	for _, b := range site.TextBlocks() {
		for _, f := range b.Fragments() {
			if f.State != component.Gone {
				r.drawWordFragment(screen, f)
			}
		}
	}
	r.evictWords()
}

// Invalidate сбрасывает кэш текстур (например, после смены размера окна).
func (r *PageRenderer) Invalidate() {
	for id, t := range r.textures {
		t.intact.Deallocate()
		t.pixelated.Deallocate()
		delete(r.textures, id)
	}
}

// --- Private Helper Functions ---

func (r *PageRenderer) drawTextBlock(screen *ebiten.Image, b *unit.TextBlock) {
	style := b.Style()
	face := r.fonts.StyleFace(style)
	ascent := r.fonts.Ascent(style)
	for _, w := range b.Words() {
		if w.Destroyed {
			continue
		}
		baseline := w.Rect.Y + (w.Rect.H-style.FontSize)/2 + ascent
		text.Draw(screen, w.Text, face, int(w.Rect.X), int(baseline), style.Color)
	}
}

func (r *PageRenderer) drawWordFragment(screen *ebiten.Image, f *component.Fragment) {
	r.alive[f.ID] = true
	img, ok := r.words[f.ID]
	if !ok {
		w, h := int(math.Ceil(f.W)), int(math.Ceil(f.H))
		if w <= 0 || h <= 0 || f.Style == nil {
			return
		}
		img = ebiten.NewImage(w, h)
		face := r.fonts.StyleFace(*f.Style)
		baseline := (f.H-f.Style.FontSize)/2 + r.fonts.Ascent(*f.Style)
		text.Draw(img, f.Text, face, 0, int(baseline), f.Style.Color)
		r.words[f.ID] = img
	}
	drawRotated(screen, img, f, 0, 0)
}

func (r *PageRenderer) evictWords() {
	for id, img := range r.words {
		if !r.alive[id] {
			img.Deallocate()
			delete(r.words, id)
		}
	}
}

func (r *PageRenderer) drawImage(screen *ebiten.Image, img *unit.Image) {
	rect := img.Bounds()
	if rect.Empty() {
		return
	}
	tex := r.texture(img, rect)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(rect.X, rect.Y)

	switch img.Stage() {
	case component.StageIntact:
		screen.DrawImage(tex.intact, op)
	case component.StageCracking:
		screen.DrawImage(tex.intact, op)
		r.drawCracks(screen, img, rect)
	case component.StagePixelating:
		screen.DrawImage(tex.pixelated, op)
	case component.StageFragmented:
		for _, t := range img.VisibleTiles() {
			drawTile(screen, tex.intact, t)
		}
	}
}

func (r *PageRenderer) drawFallingTiles(screen *ebiten.Image, img *unit.Image) {
	tex, ok := r.textures[img.ID()]
	if !ok {
		return
	}
	for _, t := range img.Fragments() {
		if t.State == component.Falling {
			drawTile(screen, tex.intact, t)
		}
	}
}

// texture возвращает текстуру изображения под текущий размер.
func (r *PageRenderer) texture(img *unit.Image, rect component.Rect) *texture {
	w, h := int(math.Ceil(rect.W)), int(math.Ceil(rect.H))
	if t, ok := r.textures[img.ID()]; ok && t.w == w && t.h == h {
		return t
	}
	src, ok := r.images.Image(string(img.ID()))
	if !ok {
		src = assets.Placeholder(img.Slug, w, h)
	}
	fitted := assets.Fit(src, w, h)
	t := &texture{
		w:         w,
		h:         h,
		intact:    ebiten.NewImageFromImage(fitted),
		pixelated: ebiten.NewImageFromImage(assets.Pixelate(fitted, config.PixelBlock)),
	}
	if old, ok := r.textures[img.ID()]; ok {
		old.intact.Deallocate()
		old.pixelated.Deallocate()
	}
	r.textures[img.ID()] = t
	return t
}

func (r *PageRenderer) drawCracks(screen *ebiten.Image, img *unit.Image, rect component.Rect) {
	ix, iy := img.Impact()
	cx := clamp01((ix - rect.X) / rect.W)
	cy := clamp01((iy - rect.Y) / rect.H)
	h := fnv.New32a()
	h.Write([]byte(img.ID()))
	for _, c := range assets.Cracks(cx, cy, config.CrackRays, config.CrackSegments, h.Sum32()) {
		vector.StrokeLine(screen,
			float32(rect.X+c.X0*rect.W), float32(rect.Y+c.Y0*rect.H),
			float32(rect.X+c.X1*rect.W), float32(rect.Y+c.Y1*rect.H),
			1.5, r.colors.CrackColor, true)
	}
}

// drawTile рисует плитку её куском исходника. Source может выходить за
// край текстуры на величину перекрытия, поэтому кусок обрезается.
func drawTile(screen, tex *ebiten.Image, t *component.Fragment) {
	src := image.Rect(
		int(math.Floor(t.Source.X)), int(math.Floor(t.Source.Y)),
		int(math.Ceil(t.Source.X+t.Source.W)), int(math.Ceil(t.Source.Y+t.Source.H)),
	)
	clip := src.Intersect(tex.Bounds())
	if clip.Empty() {
		return
	}
	sub := tex.SubImage(clip).(*ebiten.Image)
	drawRotated(screen, sub, t, float64(clip.Min.X)-t.Source.X, float64(clip.Min.Y)-t.Source.Y)
}

// drawRotated рисует img в прямоугольнике осколка с поворотом вокруг
// его центра; (ox, oy) — смещение img внутри осколка.
func drawRotated(screen, img *ebiten.Image, f *component.Fragment, ox, oy float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ox-f.W/2, oy-f.H/2)
	op.GeoM.Rotate(f.Rotation)
	op.GeoM.Translate(f.X+f.W/2, f.Y+f.H/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawLogoAt рисует логотип на месте (f == nil) или как летящий осколок.
func (r *PageRenderer) drawLogoAt(screen *ebiten.Image, l *unit.Logo, f *component.Fragment) {
	img := r.logoImage(l)
	if img == nil {
		return
	}
	if f == nil {
		rect := l.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(rect.X, rect.Y)
		screen.DrawImage(img, op)
		return
	}
	drawRotated(screen, img, f, 0, 0)
}

func (r *PageRenderer) logoImage(l *unit.Logo) *ebiten.Image {
	if img, ok := r.logos[l.ID()]; ok {
		return img
	}
	rect := l.Bounds()
	w, h := int(math.Ceil(rect.W)), int(math.Ceil(rect.H))
	if w <= 0 || h <= 0 {
		return nil
	}
	img := ebiten.NewImage(w, h)
	fw, fh := float32(w), float32(h)
	radius := fw * 0.18
	// Скруглённый квадрат: крест из двух прямоугольников и четыре круга.
	vector.DrawFilledRect(img, radius, 0, fw-2*radius, fh, l.Color, true)
	vector.DrawFilledRect(img, 0, radius, fw, fh-2*radius, l.Color, true)
	for _, c := range [][2]float32{{radius, radius}, {fw - radius, radius}, {radius, fh - radius}, {fw - radius, fh - radius}} {
		vector.DrawFilledCircle(img, c[0], c[1], radius, l.Color, true)
	}
	vector.StrokeRect(img, radius/2, radius/2, fw-radius, fh-radius, 1, DarkenColor(l.Color), true)

	face := r.fonts.Face(13, true)
	bounds := text.BoundString(face, l.Label)
	tx := (w - bounds.Dx()) / 2
	ty := (h+bounds.Dy())/2 - bounds.Max.Y
	text.Draw(img, l.Label, face, tx, ty, r.colors.LabelColor)

	r.logos[l.ID()] = img
	return img
}

func (r *PageRenderer) drawDecal(screen *ebiten.Image, d app.Decal) {
	radius := float32(4)
	switch d.Weapon {
	case types.WeaponSpread:
		radius = 6
	case types.WeaponExplosive:
		radius = 10
	}
	x, y := float32(d.X), float32(d.Y)
	vector.DrawFilledCircle(screen, x, y, radius+2, r.colors.HoleRimColor, true)
	vector.DrawFilledCircle(screen, x, y, radius, r.colors.HoleColor, true)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
