// Package webpage отдаёт страницу в виде настоящего HTML, размеченного
// атрибутами data-shatter-*, чтобы попадания мог определять браузер.
package webpage

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"go-shatter/internal/content"
	"go-shatter/internal/defs"
	"go-shatter/internal/hit"
	"go-shatter/internal/types"
)

const (
	OwnerAttr = "data-shatter-owner"
	IndexAttr = "data-shatter-index"
)

const stylesheet = `
body { background: #121218; color: #ebebf0; font-family: sans-serif; margin: 80px; }
img { display: inline-block; margin: 0 36px 36px 0; }
.logos { display: flex; gap: 28px; }
.logo { width: 72px; height: 72px; border-radius: 13px; display: flex;
        align-items: center; justify-content: center; font-weight: bold; }
`

// ImagePath — адрес, по которому сервер отдаёт изображение блока.
func ImagePath(id string) string {
	return "/img/" + id + ".png"
}

// Render строит HTML-документ страницы. Каждое слово — отдельный span
// с id из реестра, пробелы остаются текстом.
func Render(page *defs.PageDefinition) ([]byte, error) {
	body := elem(atom.Body)
	var list *html.Node
	for _, b := range page.Blocks {
		node := blockNode(b)
		if b.Type == defs.BlockListItem {
			if list == nil {
				list = elem(atom.Ul)
				body.AppendChild(list)
			}
			list.AppendChild(node)
			continue
		}
		list = nil
		body.AppendChild(node)
	}

	for _, im := range page.Images {
		img := elem(atom.Img,
			unitAttr(types.KindImage, types.UnitID(im.ID)),
			attr("src", ImagePath(im.ID)),
			attr("alt", im.Alt),
			attr("width", strconv.Itoa(int(im.Width))),
			attr("height", strconv.Itoa(int(im.Height))),
		)
		body.AppendChild(img)
	}

	if len(page.Logos) > 0 {
		row := elem(atom.Div, attr("class", "logos"))
		for _, l := range page.Logos {
			div := elem(atom.Div,
				attr("class", "logo"),
				unitAttr(types.KindLogo, types.UnitID(l.ID)),
				attr("style", fmt.Sprintf("background: #%02x%02x%02x", l.Color.R, l.Color.G, l.Color.B)),
			)
			div.AppendChild(textNode(l.Label))
			row.AppendChild(div)
		}
		body.AppendChild(row)
	}

	head := elem(atom.Head)
	title := elem(atom.Title)
	title.AppendChild(textNode(page.Title))
	head.AppendChild(title)
	style := elem(atom.Style)
	style.AppendChild(textNode(stylesheet))
	head.AppendChild(style)

	root := elem(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("webpage: render %s: %w", page.ID, err)
	}
	return buf.Bytes(), nil
}

// --- Private Helper Functions ---

func blockNode(b defs.BlockDefinition) *html.Node {
	var a atom.Atom
	switch b.Type {
	case defs.BlockHeading:
		a = atom.H1
	case defs.BlockListItem:
		a = atom.Li
	case defs.BlockQuote:
		a = atom.Blockquote
	default:
		a = atom.P
	}
	node := elem(a, attr("id", b.ID))
	owner := types.UnitID(b.ID)
	for _, tok := range content.Tokenize(b.Text) {
		if tok.Space {
			node.AppendChild(textNode(tok.Text))
			continue
		}
		span := elem(atom.Span,
			unitAttr(types.KindWord, types.WordID(owner, tok.Index)),
			attr(OwnerAttr, b.ID),
			attr(IndexAttr, strconv.Itoa(tok.Index)),
		)
		span.AppendChild(textNode(tok.Text))
		node.AppendChild(span)
	}
	return node
}

func elem(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func unitAttr(kind types.UnitKind, id types.UnitID) html.Attribute {
	return attr(hit.UnitAttr, hit.UnitAttrValue(kind, id))
}
