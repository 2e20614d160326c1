package analyzer

import (
	"strings"

	"tokfilter/internal/domain"
	"tokfilter/internal/port"
)

// LowercaseFilter lowercases token text. It never drops a token.
type LowercaseFilter struct {
	input port.TokenStream
	err   error
}

func NewLowercaseFilter(input port.TokenStream) *LowercaseFilter {
	return &LowercaseFilter{input: input}
}

func (f *LowercaseFilter) Next() (domain.Token, error) {
	if f.err != nil {
		return domain.Token{}, f.err
	}
	tok, err := f.input.Next()
	if err != nil {
		f.err = err
		return domain.Token{}, err
	}
	tok.Text = strings.ToLower(tok.Text)
	return tok, nil
}

// StopFilter drops tokens whose text is an exact member of its stopword set.
type StopFilter struct {
	input     port.TokenStream
	stopwords map[string]struct{}
	err       error
}

// NewStopFilter creates a StopFilter. With no words given it uses
// DefaultStopwords.
func NewStopFilter(input port.TokenStream, words []string) *StopFilter {
	if len(words) == 0 {
		words = DefaultStopwords()
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return &StopFilter{input: input, stopwords: m}
}

func (f *StopFilter) Next() (domain.Token, error) {
	if f.err != nil {
		return domain.Token{}, f.err
	}
	for {
		tok, err := f.input.Next()
		if err != nil {
			f.err = err
			return domain.Token{}, err
		}
		if _, isStop := f.stopwords[tok.Text]; !isStop {
			return tok, nil
		}
	}
}

// DefaultStopwords returns a short list of common Dutch function words.
func DefaultStopwords() []string {
	return []string{
		"de", "het", "een", "en", "van", "in", "is", "op", "te", "dat",
		"die", "voor", "met", "zijn", "er", "niet", "aan", "om", "ook",
		"als", "bij", "of", "maar", "dan", "naar", "nog", "wel", "tot",
	}
}
