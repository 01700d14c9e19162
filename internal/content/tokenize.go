// Package content превращает записи CMS в текст, пригодный для разрушения.
package content

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token — кусок текста блока. Пробельные токены занимают индекс,
// но целью не бывают.
type Token struct {
	Index int
	Text  string
	Space bool
}

// Tokenize делит текст на чередующиеся слова и пробельные промежутки.
// Склейка всех Token.Text даёт исходную строку.
func Tokenize(text string) []Token {
	var tokens []Token
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			tokens = append(tokens, Token{Index: len(tokens), Text: text[start:i], Space: inSpace})
			start = i
			inSpace = space
		}
	}
	if start < len(text) {
		tokens = append(tokens, Token{Index: len(tokens), Text: text[start:], Space: inSpace})
	}
	return tokens
}

// Words возвращает только непробельные токены, индексы сохраняются.
func Words(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)/2+1)
	for _, t := range tokens {
		if !t.Space {
			out = append(out, t)
		}
	}
	return out
}

// Join собирает текст обратно.
func Join(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// RuneLen — длина токена в символах (для моноширинной раскладки TUI).
func (t Token) RuneLen() int {
	return utf8.RuneCountInString(t.Text)
}
