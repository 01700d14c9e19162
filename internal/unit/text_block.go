package unit

import (
	"strings"

	"go-shatter/internal/component"
	"go-shatter/internal/content"
	"go-shatter/internal/event"
	"go-shatter/internal/hit"
	"go-shatter/internal/types"
)

// Word — одно слово текстового блока.
type Word struct {
	ID        types.UnitID
	Index     int // индекс токена в тексте блока
	Text      string
	Rect      component.Rect
	Destroyed bool // локальная копия состояния реестра для отрисовки
	node      hit.NodeID
}

// TextBlock — абзац или заголовок, разбитый на слова. Каждое слово
// разрушается отдельно; id слова — word-<id блока>-<индекс токена>.
type TextBlock struct {
	base
	Role   string
	tokens []content.Token
	words  []*Word
	byIdx  map[int]*Word
	style  component.StyleSnapshot
	flying map[int]*component.Fragment
}

// NewTextBlock создаёт блок с текстом и стилем.
func NewTextBlock(id types.UnitID, role, text string, style component.StyleSnapshot) *TextBlock {
	b := &TextBlock{
		base:   base{id: id},
		Role:   role,
		tokens: content.Tokenize(text),
		byIdx:  make(map[int]*Word),
		style:  style,
		flying: make(map[int]*component.Fragment),
	}
	for _, tok := range content.Words(b.tokens) {
		w := &Word{ID: types.WordID(id, tok.Index), Index: tok.Index, Text: tok.Text}
		b.words = append(b.words, w)
		b.byIdx[tok.Index] = w
	}
	return b
}

func (b *TextBlock) Kind() types.UnitKind {
	return types.KindWord
}

// Text возвращает исходный текст блока.
func (b *TextBlock) Text() string {
	return content.Join(b.tokens)
}

// Style возвращает стиль блока.
func (b *TextBlock) Style() component.StyleSnapshot {
	return b.style
}

// Words возвращает слова блока в порядке текста. Срез нельзя менять.
func (b *TextBlock) Words() []*Word {
	return b.words
}

// Word возвращает слово по индексу токена.
func (b *TextBlock) Word(index int) (*Word, bool) {
	w, ok := b.byIdx[index]
	return w, ok
}

// Mount подписывает блок на выстрелы и регистрирует слова в дереве.
func (b *TextBlock) Mount(env *Env) {
	b.mount(env, b, nil)
	b.fragments.OnSettled = b.forgetLanded
	for _, w := range b.words {
		w.node = env.Tree.Add(b.node, w.Rect, 0, &hit.Boundary{
			Kind:  types.KindWord,
			ID:    w.ID,
			Owner: b.id,
			Index: w.Index,
		})
	}
	b.Reconcile()
}

// Dispose отписывает блок и бросает осколки.
func (b *TextBlock) Dispose() {
	b.dispose()
	clear(b.flying)
}

// Layout раскладывает слова с переносом по ширине maxWidth и
// возвращает высоту блока. Перевод строки в тексте переносит строку.
func (b *TextBlock) Layout(x, y, maxWidth float64, m Measurer) float64 {
	lineH := b.style.FontSize * b.style.LineHeight
	if lineH <= 0 {
		lineH = b.style.FontSize
	}
	cx, cy := x, y
	bounds := component.Rect{}
	for _, tok := range b.tokens {
		if tok.Space {
			if n := strings.Count(tok.Text, "\n"); n > 0 {
				cx = x
				cy += lineH * float64(n)
				continue
			}
			if cx > x {
				w, _ := m.Measure(tok.Text, b.style)
				cx += w
			}
			continue
		}
		w, _ := m.Measure(tok.Text, b.style)
		if cx > x && cx+w > x+maxWidth {
			cx = x
			cy += lineH
		}
		word := b.byIdx[tok.Index]
		word.Rect = component.Rect{X: cx, Y: cy, W: w, H: lineH}
		bounds = bounds.Union(word.Rect)
		cx += w
	}
	b.rect = bounds
	if b.mounted() {
		b.env.Tree.Move(b.node, b.rect)
		for _, w := range b.words {
			b.env.Tree.Move(w.node, w.Rect)
		}
	}
	if bounds.Empty() {
		return 0
	}
	return bounds.Y + bounds.H - y
}

// OnEvent обрабатывает выстрел.
func (b *TextBlock) OnEvent(e *event.Event) {
	shot, h, ok := b.resolve(e)
	if !ok || h.Kind != types.KindWord || h.Owner != b.id {
		return
	}
	e.StopPropagation()
	b.shatter(h.Index, shot.Weapon)
}

func (b *TextBlock) shatter(struck int, weapon types.WeaponKind) {
	reg := b.env.Registry
	alive := make([]int, 0, len(b.words))
	for _, w := range b.words {
		if !reg.IsDestroyed(types.KindWord, w.ID) {
			alive = append(alive, w.Index)
		}
	}

	broke := false
	for _, idx := range b.env.Fragmenter.SelectWords(weapon, struck, alive) {
		w := b.byIdx[idx]
		style := b.style
		f := b.env.Fragmenter.Word(w.ID, w.Text, w.Rect, &style, weapon)
		if f == nil {
			continue
		}
		w.Destroyed = true
		b.flying[idx] = f
		b.fragments.Launch(f)
		reg.Destroy(types.KindWord, w.ID)
		broke = true
	}
	if broke {
		b.shattered()
	}
}

// Reconcile сверяет слова с реестром. Восстановленное слово теряет
// свой осколок, если тот ещё летит.
func (b *TextBlock) Reconcile() {
	if !b.mounted() {
		return
	}
	for _, w := range b.words {
		destroyed := b.env.Registry.IsDestroyed(types.KindWord, w.ID)
		if w.Destroyed == destroyed {
			continue
		}
		w.Destroyed = destroyed
		if destroyed {
			continue
		}
		if f, ok := b.flying[w.Index]; ok {
			b.fragments.Remove(f)
			delete(b.flying, w.Index)
		}
	}
}

// DestroyedCount — число разрушенных слов по локальной копии.
func (b *TextBlock) DestroyedCount() int {
	n := 0
	for _, w := range b.words {
		if w.Destroyed {
			n++
		}
	}
	return n
}

func (b *TextBlock) forgetLanded() {
	for idx, f := range b.flying {
		if f.State == component.Gone {
			delete(b.flying, idx)
		}
	}
}
