package sink

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tokfilter/internal/domain"
	"tokfilter/internal/port"
)

// ErrUnknownFormat is returned by New for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the names accepted by New.
var Formats = []string{"text", "json", "trace"}

// New returns the sink for the named format writing to w.
func New(format string, w io.Writer, colors bool) (port.TokenSink, error) {
	switch format {
	case "text":
		return NewTextSink(w), nil
	case "json":
		return NewJSONSink(w), nil
	case "trace":
		return NewTraceSink(w, colors), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// TextSink writes one token text per line.
type TextSink struct {
	w *bufio.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: bufio.NewWriter(w)}
}

func (s *TextSink) Write(_ string, tok domain.Token) error {
	if _, err := s.w.WriteString(tok.Text); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

func (s *TextSink) Flush() error {
	return s.w.Flush()
}

type jsonToken struct {
	Path string `json:"path"`
	domain.Token
}

// JSONSink writes one JSON object per token.
type JSONSink struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONSink{w: bw, enc: enc}
}

func (s *JSONSink) Write(path string, tok domain.Token) error {
	return s.enc.Encode(jsonToken{Path: path, Token: tok})
}

func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// TraceSink writes "path:position [start,end) text" lines for inspecting
// what survived and where it came from.
type TraceSink struct {
	w     *bufio.Writer
	where *color.Color
	text  *color.Color
}

func NewTraceSink(w io.Writer, colors bool) *TraceSink {
	where := color.New(color.FgCyan)
	text := color.New(color.FgGreen, color.Bold)
	if colors {
		where.EnableColor()
		text.EnableColor()
	} else {
		where.DisableColor()
		text.DisableColor()
	}
	return &TraceSink{w: bufio.NewWriter(w), where: where, text: text}
}

func (s *TraceSink) Write(path string, tok domain.Token) error {
	if _, err := s.where.Fprintf(s.w, "%s:%d [%d,%d)", path, tok.Position, tok.StartByte, tok.EndByte); err != nil {
		return err
	}
	if _, err := s.w.WriteString(" "); err != nil {
		return err
	}
	if _, err := s.text.Fprint(s.w, tok.Text); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

func (s *TraceSink) Flush() error {
	return s.w.Flush()
}
