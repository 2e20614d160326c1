package analyzer

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	"tokfilter/internal/domain"
)

// WhitespaceTokenizer splits text read from an io.Reader on Unicode
// whitespace. Punctuation stays inside the tokens.
type WhitespaceTokenizer struct {
	r      *bufio.Reader
	offset int
	pos    int
	err    error
	buf    strings.Builder
}

// NewWhitespaceTokenizer creates a tokenizer reading from r.
func NewWhitespaceTokenizer(r io.Reader) *WhitespaceTokenizer {
	return &WhitespaceTokenizer{r: bufio.NewReader(r)}
}

// Next returns the next token, io.EOF at the end of the input, or the read
// error that stopped it. A token cut short by a read error is discarded.
func (t *WhitespaceTokenizer) Next() (domain.Token, error) {
	if t.err != nil {
		return domain.Token{}, t.err
	}

	t.buf.Reset()
	start := -1
	for {
		r, size, err := t.r.ReadRune()
		if err != nil {
			t.err = err
			if errors.Is(err, io.EOF) && start >= 0 {
				return t.emit(start, t.offset), nil
			}
			return domain.Token{}, err
		}

		if unicode.IsSpace(r) {
			end := t.offset
			t.offset += size
			if start >= 0 {
				return t.emit(start, end), nil
			}
			continue
		}

		if start < 0 {
			start = t.offset
		}
		t.buf.WriteRune(r)
		t.offset += size
	}
}

// Count returns the number of tokens produced so far.
func (t *WhitespaceTokenizer) Count() int {
	return t.pos
}

func (t *WhitespaceTokenizer) emit(start, end int) domain.Token {
	tok := domain.Token{
		Text:      t.buf.String(),
		Position:  t.pos,
		StartByte: start,
		EndByte:   end,
	}
	t.pos++
	return tok
}

// SliceStream yields a fixed list of token texts. Byte offsets are computed
// as if the texts were joined by single spaces.
type SliceStream struct {
	texts  []string
	next   int
	offset int
}

func NewSliceStream(texts ...string) *SliceStream {
	return &SliceStream{texts: texts}
}

func (s *SliceStream) Next() (domain.Token, error) {
	if s.next >= len(s.texts) {
		return domain.Token{}, io.EOF
	}
	text := s.texts[s.next]
	tok := domain.Token{
		Text:      text,
		Position:  s.next,
		StartByte: s.offset,
		EndByte:   s.offset + len(text),
	}
	s.next++
	s.offset += len(text) + 1
	return tok, nil
}
