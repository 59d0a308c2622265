// Package stem reduces words to their porter stems so that queries like
// "running" match transcripts that say "runs". Searchable transcripts are
// stemmed once at archive time, queries are stemmed on every search.
package stem

import (
	"strings"
	"sync"

	"github.com/reiver/go-porterstemmer"
)

var builders = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// StemLine is a highly optimized way of stemming a line, removing common punctuation.
func StemLine(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	b := builders.Get().(*strings.Builder)
	b.Reset()
	b.Grow(len(value))

	lastSpace := -1
	for i, ch := range value {
		if ch == ' ' {
			if i > 1 {
				word := strings.TrimFunc(value[lastSpace+1:i], trimPuntuation)
				b.WriteString(porterstemmer.StemString(word))
				b.WriteByte(byte(' '))
			}

			lastSpace = i
		}
	}

	word := strings.TrimFunc(value[lastSpace+1:], trimPuntuation)
	b.WriteString(porterstemmer.StemString(word))

	s := b.String()
	builders.Put(b)
	return s
}

// StemLineWords stems every word of a line separately, dropping common
// punctuation and words that were nothing but punctuation. For callers
// that need the words individually, like query filters.
func StemLineWords(value string) []string {
	fields := strings.Fields(value)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, trimPuntuation)
		if word == "" {
			continue
		}

		words = append(words, porterstemmer.StemString(word))
	}

	return words
}

func trimPuntuation(r rune) bool {
	return r == ',' || r == '.' || r == '!' || r == '?' || r == '"'
}
