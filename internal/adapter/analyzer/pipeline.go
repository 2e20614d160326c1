package analyzer

import (
	"io"

	"tokfilter/internal/domain"
	"tokfilter/internal/port"
)

// PipelineOptions selects the optional stages after the punctuation filter.
type PipelineOptions struct {
	Lowercase bool
	Stopwords bool
	StopList  []string
}

// Pipeline chains a WhitespaceTokenizer, a PunctuationFilter and the
// optional lowercase and stopword filters.
type Pipeline struct {
	tokenizer *WhitespaceTokenizer
	punct     *PunctuationFilter
	out       port.TokenStream
}

// NewPipeline builds a pipeline reading text from r.
func NewPipeline(r io.Reader, opts PipelineOptions) *Pipeline {
	tokenizer := NewWhitespaceTokenizer(r)
	punct := NewPunctuationFilter(tokenizer)

	var out port.TokenStream = punct
	if opts.Lowercase {
		out = NewLowercaseFilter(out)
	}
	if opts.Stopwords {
		out = NewStopFilter(out, opts.StopList)
	}

	return &Pipeline{
		tokenizer: tokenizer,
		punct:     punct,
		out:       out,
	}
}

func (p *Pipeline) Next() (domain.Token, error) {
	return p.out.Next()
}

// Read returns the number of tokens the tokenizer has produced.
func (p *Pipeline) Read() int {
	return p.tokenizer.Count()
}

// Stats returns the punctuation filter counters.
func (p *Pipeline) Stats() domain.FilterStats {
	return p.punct.Stats()
}
