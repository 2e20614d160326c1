package analyzer

import (
	"strings"
	"unicode"

	"tokfilter/internal/domain"
	"tokfilter/internal/port"
)

const quote = '\''

// removable reports whether c is stripped wherever it occurs in a token.
func removable(c byte) bool {
	switch c {
	case '.', '(', ')', '[', ']':
		return true
	}
	return false
}

// Normalize removes periods, parentheses and square brackets anywhere in s,
// and an apostrophe in the first or last position.
//
//	Normalize("a.u.b.")   == "aub"
//	Normalize("bel(len)") == "bellen"
//	Normalize("'quote'")  == "quote"
//	Normalize("don't")    == "don't"
//
// All stripped characters are ASCII, so the scan works on bytes and never
// splits a multi-byte sequence.
func Normalize(s string) string {
	last := len(s) - 1
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if removable(c) || (c == quote && (i == 0 || i == last)) {
			break
		}
	}
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) - 1)
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if removable(c) || (c == quote && (i == 0 || i == last)) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// HasLetterOrDigit reports whether s contains a Unicode letter or a decimal digit.
func HasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// PunctuationFilter normalizes every token pulled from its input and drops
// the ones left without a letter or digit. Survivors keep their position
// and offsets.
//
// Errors from the input, io.EOF included, are returned unchanged and the
// input is not pulled again afterwards. A PunctuationFilter must not be used
// from more than one goroutine.
type PunctuationFilter struct {
	input port.TokenStream
	err   error
	stats domain.FilterStats
}

// NewPunctuationFilter creates a PunctuationFilter reading from input.
func NewPunctuationFilter(input port.TokenStream) *PunctuationFilter {
	return &PunctuationFilter{input: input}
}

// Next returns the next surviving token. It may pull any number of tokens
// from the input before one survives.
func (f *PunctuationFilter) Next() (domain.Token, error) {
	if f.err != nil {
		return domain.Token{}, f.err
	}
	for {
		tok, err := f.input.Next()
		if err != nil {
			f.err = err
			return domain.Token{}, err
		}
		f.stats.Pulled++

		text := Normalize(tok.Text)
		if !HasLetterOrDigit(text) {
			continue
		}
		tok.Text = text
		f.stats.Emitted++
		return tok, nil
	}
}

// Stats returns the number of tokens pulled and emitted so far.
func (f *PunctuationFilter) Stats() domain.FilterStats {
	return f.stats
}
