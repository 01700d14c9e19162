// internal/defs/page.go
package defs

import (
	"image/color"
)

// BlockType defines how a text block is set.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockListItem  BlockType = "list-item"
	BlockQuote     BlockType = "quote"
)

// PageDefinition is one page of the portfolio as the content provider returns it.
type PageDefinition struct {
	ID     string            `json:"id"`
	Title  string            `json:"title"`
	Blocks []BlockDefinition `json:"blocks"`
	Images []ImageDefinition `json:"images"`
	Logos  []LogoDefinition  `json:"logos"`
}

// BlockDefinition is a text block. Either Text or HTML is set; an HTML body
// expands into several blocks with ids "<id>-<n>".
type BlockDefinition struct {
	ID    string     `json:"id"`
	Type  BlockType  `json:"type"`
	Text  string     `json:"text,omitempty"`
	HTML  string     `json:"html,omitempty"`
	Style *TextStyle `json:"style,omitempty"`
}

// TextStyle overrides the default look of a block.
type TextStyle struct {
	FontSize   float64    `json:"font_size"`
	FontWeight int        `json:"font_weight"`
	Color      color.RGBA `json:"color"`
	LineHeight float64    `json:"line_height"`
}

// ImageDefinition is a portfolio image. ID defaults to "image-<slug>".
type ImageDefinition struct {
	ID     string  `json:"id,omitempty"`
	Slug   string  `json:"slug"`
	Path   string  `json:"path,omitempty"` // PNG/JPEG/WebP; empty — procedural placeholder
	Alt    string  `json:"alt"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LogoDefinition is a technology logo; it breaks as a single piece.
type LogoDefinition struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Path  string     `json:"path,omitempty"`
	Color color.RGBA `json:"color"`
}
