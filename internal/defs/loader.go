// internal/defs/loader.go
package defs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"go-shatter/internal/content"
	"go-shatter/internal/types"
)

//go:embed page.json
var defaultPage []byte

// ErrInvalidPage is returned for structurally broken page definitions.
var ErrInvalidPage = errors.New("invalid page definition")

// LoadPage reads a page definition file.
func LoadPage(path string) (*PageDefinition, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page definition file: %w", err)
	}
	page, err := ParsePage(file)
	if err != nil {
		return nil, err
	}
	log.Printf("[Defs] Loaded page %q: %d blocks, %d images, %d logos",
		page.ID, len(page.Blocks), len(page.Images), len(page.Logos))
	return page, nil
}

// DefaultPage returns the page compiled into the binary.
func DefaultPage() *PageDefinition {
	page, err := ParsePage(defaultPage)
	if err != nil {
		// Встроенная страница проверяется тестами.
		panic(err)
	}
	return page
}

// LoadPageOrDefault falls back to the embedded page when path is empty or broken.
func LoadPageOrDefault(path string) *PageDefinition {
	if path == "" {
		return DefaultPage()
	}
	page, err := LoadPage(path)
	if err != nil {
		log.Printf("[Defs] Warning: %v (using built-in page)", err)
		return DefaultPage()
	}
	return page
}

// ParsePage decodes and normalizes a page: HTML bodies are expanded into
// plain text blocks and image ids are derived from slugs.
func ParsePage(data []byte) (*PageDefinition, error) {
	var page PageDefinition
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page definition: %w", err)
	}

	blocks := make([]BlockDefinition, 0, len(page.Blocks))
	for _, b := range page.Blocks {
		if b.ID == "" {
			return nil, fmt.Errorf("%w: text block without id", ErrInvalidPage)
		}
		if b.HTML == "" {
			if b.Type == "" {
				b.Type = BlockParagraph
			}
			blocks = append(blocks, b)
			continue
		}
		expanded, err := content.ParseHTML(b.HTML)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", b.ID, err)
		}
		for i, e := range expanded {
			blocks = append(blocks, BlockDefinition{
				ID:    fmt.Sprintf("%s-%d", b.ID, i),
				Type:  BlockType(e.Type),
				Text:  e.Text,
				Style: b.Style,
			})
		}
	}
	page.Blocks = blocks

	for i := range page.Images {
		img := &page.Images[i]
		if img.ID == "" {
			if img.Slug == "" {
				return nil, fmt.Errorf("%w: image without id or slug", ErrInvalidPage)
			}
			img.ID = string(types.ImageID(img.Slug))
		}
	}
	for _, l := range page.Logos {
		if l.ID == "" {
			return nil, fmt.Errorf("%w: logo without id", ErrInvalidPage)
		}
	}
	return &page, nil
}
