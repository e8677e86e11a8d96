package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/JaimeStill/spiral/internal/ontology"
)

type categoryMatcher struct {
	id       ontology.ID
	keywords []string
}

// compileMatchers normalizes every keyword the same way input text is
// normalized. Keywords that collapse to the same form are kept once.
func compileMatchers(o *ontology.Ontology) []categoryMatcher {
	cats := o.Categories()
	matchers := make([]categoryMatcher, len(cats))

	for i, c := range cats {
		m := categoryMatcher{id: c.ID}
		seen := make(map[string]bool, len(c.Lexicon))
		for _, word := range c.Lexicon {
			kw := normalize(word)
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			m.keywords = append(m.keywords, kw)
		}
		matchers[i] = m
	}

	return matchers
}

// normalize composes text to NFC and applies full Unicode case folding.
// A Caser holds state, so one is built per call.
func normalize(text string) string {
	return cases.Fold().String(norm.NFC.String(text))
}

func (m categoryMatcher) count(normalized string) int {
	var n int
	for _, kw := range m.keywords {
		n += countWord(normalized, kw)
	}
	return n
}

// countWord counts non-overlapping occurrences of word in text that are not
// adjacent to a letter, digit, mark, or underscore on either side.
func countWord(text, word string) int {
	var n int
	for i := 0; i <= len(text)-len(word); {
		j := strings.Index(text[i:], word)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(word)

		if !wordBefore(text, start) && !wordAfter(text, end) {
			n++
			i = end
			continue
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return n
}

func wordBefore(text string, pos int) bool {
	if pos == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return isWordRune(r)
}

func wordAfter(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}
