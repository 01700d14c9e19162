package defs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPageParses(t *testing.T) {
	page := DefaultPage()
	if page.ID != "home" {
		t.Fatalf("page id = %q", page.ID)
	}
	if len(page.Images) == 0 || len(page.Logos) == 0 {
		t.Fatal("default page lost images or logos")
	}
	ids := map[string]bool{}
	for _, b := range page.Blocks {
		if ids[b.ID] {
			t.Fatalf("duplicate block id %q", b.ID)
		}
		ids[b.ID] = true
		if b.HTML != "" {
			t.Fatalf("block %q kept raw html", b.ID)
		}
	}
	if page.Images[0].ID != "image-hero" {
		t.Fatalf("image id = %q, want image-hero", page.Images[0].ID)
	}
}

func TestParsePageExpandsHTML(t *testing.T) {
	data := []byte(`{"id":"p","blocks":[
		{"id":"intro","text":"plain"},
		{"id":"body","html":"<h2>Hi</h2><p>one <em>two</em></p>"}
	]}`)
	page, err := ParsePage(data)
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	want := []BlockDefinition{
		{ID: "intro", Type: BlockParagraph, Text: "plain"},
		{ID: "body-0", Type: BlockHeading, Text: "Hi"},
		{ID: "body-1", Type: BlockParagraph, Text: "one two"},
	}
	if len(page.Blocks) != len(want) {
		t.Fatalf("blocks = %+v", page.Blocks)
	}
	for i, b := range page.Blocks {
		if b.ID != want[i].ID || b.Type != want[i].Type || b.Text != want[i].Text {
			t.Errorf("block %d = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestParsePageErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"bad json", `{`, false},
		{"block without id", `{"blocks":[{"text":"x"}]}`, true},
		{"image without slug", `{"images":[{"alt":"x"}]}`, true},
		{"logo without id", `{"logos":[{"label":"Go"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePage([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrInvalidPage) != tt.invalid {
				t.Fatalf("errors.Is(ErrInvalidPage) = %v for %v", !tt.invalid, err)
			}
		})
	}
}

func TestLoadPageOrDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.json")
	if err := os.WriteFile(path, []byte(`{"id":"custom","logos":[{"id":"logo-x"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if page := LoadPageOrDefault(path); page.ID != "custom" {
		t.Fatalf("page id = %q, want custom", page.ID)
	}
	if page := LoadPageOrDefault(filepath.Join(dir, "missing.json")); page.ID != "home" {
		t.Fatalf("fallback page id = %q, want home", page.ID)
	}
	if page := LoadPageOrDefault(""); page.ID != "home" {
		t.Fatalf("empty path page id = %q, want home", page.ID)
	}
}
