package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BlockType — вид текстового блока.
type BlockType string

const (
	Heading   BlockType = "heading"
	Paragraph BlockType = "paragraph"
	ListItem  BlockType = "list-item"
	Quote     BlockType = "quote"
)

// Block — один текстовый блок страницы.
type Block struct {
	Type  BlockType
	Level int // уровень заголовка, 0 для остальных
	Text  string
}

var spaceRun = regexp.MustCompile(`\s+`)

// policy режет всё, кроме разметки текста. Разрушаемые блоки
// никогда не получают скрипты и стили из CMS.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6", "p", "ul", "ol", "li",
		"blockquote", "em", "strong", "b", "i", "a", "code", "span", "br")
	return p
}()

// Sanitize возвращает очищенный HTML.
func Sanitize(raw string) string {
	return policy.Sanitize(raw)
}

// ParseHTML разбирает rich-text тело записи CMS на блоки.
// Текст вне блочных элементов становится одним абзацем.
func ParseHTML(raw string) ([]Block, error) {
	doc, err := html.Parse(strings.NewReader(Sanitize(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var blocks []Block
	walkBlocks(doc, &blocks)
	if len(blocks) == 0 {
		if text := collectText(doc); text != "" {
			blocks = append(blocks, Block{Type: Paragraph, Text: text})
		}
	}
	return blocks, nil
}

func walkBlocks(n *html.Node, blocks *[]Block) {
	if n.Type == html.ElementNode {
		var b Block
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			b = Block{Type: Heading, Level: int(n.Data[1] - '0')}
		case atom.P:
			b = Block{Type: Paragraph}
		case atom.Li:
			b = Block{Type: ListItem}
		case atom.Blockquote:
			b = Block{Type: Quote}
		}
		if b.Type != "" {
			if b.Text = collectText(n); b.Text != "" {
				*blocks = append(*blocks, b)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkBlocks(c, blocks)
	}
}

// collectText склеивает текст поддерева, схлопывая пробелы.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
		case html.ElementNode:
			if n.DataAtom == atom.Br {
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(spaceRun.ReplaceAllString(sb.String(), " "))
}
