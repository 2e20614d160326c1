package port

import "tokfilter/internal/domain"

// TokenStream is a forward-only, pull-based sequence of tokens.
// Next returns io.EOF once the sequence is exhausted. Any other error is a
// failure of the stream and is returned as is.
type TokenStream interface {
	Next() (domain.Token, error)
}

// TokenSink receives the tokens that survive a pipeline.
type TokenSink interface {
	Write(path string, tok domain.Token) error

	Flush() error
}
