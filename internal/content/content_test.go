package content

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		texts []string
		words []int
	}{
		{"two words", "hello world", []string{"hello", " ", "world"}, []int{0, 2}},
		{"leading space", "  go", []string{"  ", "go"}, []int{1}},
		{"trailing newline", "a\n", []string{"a", "\n"}, []int{0}},
		{"mixed runs", "a \t b", []string{"a", " \t ", "b"}, []int{0, 2}},
		{"unicode", "привет мир", []string{"привет", " ", "мир"}, []int{0, 2}},
		{"empty", "", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.in)
			var texts []string
			for i, tok := range tokens {
				if tok.Index != i {
					t.Fatalf("token %d has index %d", i, tok.Index)
				}
				texts = append(texts, tok.Text)
			}
			if !reflect.DeepEqual(texts, tt.texts) {
				t.Fatalf("texts = %q, want %q", texts, tt.texts)
			}
			var words []int
			for _, w := range Words(tokens) {
				words = append(words, w.Index)
			}
			if !reflect.DeepEqual(words, tt.words) {
				t.Fatalf("word indices = %v, want %v", words, tt.words)
			}
			if Join(tokens) != tt.in {
				t.Fatalf("Join = %q, want %q", Join(tokens), tt.in)
			}
		})
	}
}

func TestRuneLen(t *testing.T) {
	if n := (Token{Text: "мир"}).RuneLen(); n != 3 {
		t.Fatalf("RuneLen = %d, want 3", n)
	}
}

func TestParseHTMLBlocks(t *testing.T) {
	raw := `<h2>About  me</h2>
<p>I build <strong>fast</strong> things.<script>alert(1)</script></p>
<ul><li>Go</li><li>Rust</li></ul>
<blockquote>Ship it</blockquote>`

	blocks, err := ParseHTML(raw)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	want := []Block{
		{Type: Heading, Level: 2, Text: "About me"},
		{Type: Paragraph, Text: "I build fast things."},
		{Type: ListItem, Text: "Go"},
		{Type: ListItem, Text: "Rust"},
		{Type: Quote, Text: "Ship it"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("blocks = %+v\nwant %+v", blocks, want)
	}
}

func TestParseHTMLBareText(t *testing.T) {
	blocks, err := ParseHTML("just <em>plain</em> text")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Type != Paragraph || blocks[0].Text != "just plain text" {
		t.Fatalf("blocks = %+v", blocks)
	}
}

func TestParseHTMLEmpty(t *testing.T) {
	blocks, err := ParseHTML("<script>x()</script>")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("blocks = %+v, want none", blocks)
	}
}
