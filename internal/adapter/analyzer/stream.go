package analyzer

import (
	"errors"
	"io"
	"iter"

	"tokfilter/internal/domain"
	"tokfilter/internal/port"
)

// All returns an iterator over the tokens of ts. Exhaustion ends the
// iteration; a failure is yielded once with a zero token and ends it too.
func All(ts port.TokenStream) iter.Seq2[domain.Token, error] {
	return func(yield func(domain.Token, error) bool) {
		for {
			tok, err := ts.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(domain.Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Collect drains ts. On failure it returns the tokens read so far along
// with the error.
func Collect(ts port.TokenStream) ([]domain.Token, error) {
	var tokens []domain.Token
	for tok, err := range All(ts) {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Texts returns the text of each token.
func Texts(tokens []domain.Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return texts
}
