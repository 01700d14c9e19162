package hit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"go-shatter/internal/types"
)

// UnitAttr — атрибут, которым страница помечает границы блоков.
// Значение — "<kind>:<id>", для слов дополнительно data-shatter-owner
// и data-shatter-index.
const UnitAttr = "data-shatter-unit"

const elementAtScript = `(x, y) => {
	const el = document.elementFromPoint(x, y);
	if (!el) return "";
	const unit = el.closest('[data-shatter-unit]');
	if (!unit) return "";
	return JSON.stringify({
		unit: unit.getAttribute('data-shatter-unit'),
		owner: unit.getAttribute('data-shatter-owner') || "",
		index: parseInt(unit.getAttribute('data-shatter-index') || "0", 10),
	});
}`

type rodBoundary struct {
	Unit  string `json:"unit"`
	Owner string `json:"owner"`
	Index int    `json:"index"`
}

// RodTester — HitTester поверх настоящего браузера: точечный запрос
// выполняет сам движок страницы.
type RodTester struct {
	page     *rod.Page
	registry DestructionChecker
	timeout  time.Duration
}

// NewRodTester оборачивает уже открытую страницу.
func NewRodTester(page *rod.Page, registry DestructionChecker) *RodTester {
	return &RodTester{page: page, registry: registry, timeout: 2 * time.Second}
}

// OpenRodTester запускает (или подключается к) Chrome и открывает url.
// controlURL пустой — локальный headless-браузер через launcher.
// Вызывающий закрывает браузер через возвращённую функцию.
func OpenRodTester(ctx context.Context, controlURL, url string, registry DestructionChecker) (*RodTester, func(), error) {
	if controlURL == "" {
		u, err := launcher.New().Headless(true).Context(ctx).Launch()
		if err != nil {
			return nil, nil, fmt.Errorf("hit: launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, nil, fmt.Errorf("hit: connect browser: %w", err)
	}
	closeFn := func() {
		if err := browser.Close(); err != nil {
			log.Printf("[RodTester] close: %v", err)
		}
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("hit: open %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("hit: wait load %s: %w", url, err)
	}
	return NewRodTester(page, registry), closeFn, nil
}

// Resolve реализует HitTester. Любая ошибка браузера — промах.
func (r *RodTester) Resolve(x, y float64) (Hit, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	res, err := r.page.Context(ctx).Eval(elementAtScript, x, y)
	if err != nil {
		log.Printf("[RodTester] eval at (%.0f, %.0f): %v", x, y, err)
		return Hit{}, false
	}
	raw := res.Value.Str()
	if raw == "" {
		return Hit{}, false
	}

	var b rodBoundary
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return Hit{}, false
	}
	kind, id, ok := ParseUnitAttr(b.Unit)
	if !ok {
		return Hit{}, false
	}
	if r.registry != nil && r.registry.IsDestroyed(kind, id) {
		return Hit{}, false
	}
	return Hit{Kind: kind, ID: id, Owner: types.UnitID(b.Owner), Index: b.Index, X: x, Y: y}, true
}

// Center возвращает центр блока с заданным значением UnitAttr
// в координатах окна.
func (r *RodTester) Center(kind types.UnitKind, id types.UnitID) (float64, float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	selector := fmt.Sprintf("[%s=%q]", UnitAttr, UnitAttrValue(kind, id))
	el, err := r.page.Context(ctx).Element(selector)
	if err != nil {
		return 0, 0, fmt.Errorf("hit: find %s: %w", selector, err)
	}
	shape, err := el.Shape()
	if err != nil {
		return 0, 0, fmt.Errorf("hit: shape of %s: %w", selector, err)
	}
	box := shape.Box()
	return box.X + box.Width/2, box.Y + box.Height/2, nil
}

// ParseUnitAttr разбирает значение атрибута "<kind>:<id>".
func ParseUnitAttr(v string) (types.UnitKind, types.UnitID, bool) {
	for i := 0; i < len(v); i++ {
		if v[i] != ':' {
			continue
		}
		kind := types.UnitKind(v[:i])
		id := types.UnitID(v[i+1:])
		switch kind {
		case types.KindWord, types.KindImage, types.KindLogo:
		default:
			return "", "", false
		}
		if id == "" {
			return "", "", false
		}
		return kind, id, true
	}
	return "", "", false
}

// UnitAttrValue — обратная к ParseUnitAttr.
func UnitAttrValue(kind types.UnitKind, id types.UnitID) string {
	return string(kind) + ":" + string(id)
}
