//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"tokfilter/internal/adapter/analyzer"
)

// normalizeToken(token) -> {text, keep}
func normalizeToken(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing token"})
	}
	text := analyzer.Normalize(args[0].String())
	return js.ValueOf(map[string]any{
		"text": text,
		"keep": analyzer.HasLetterOrDigit(text),
	})
}

// filterText(text, lowercase, stopwords) -> [{text, position, start, end}]
func filterText(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing text"})
	}
	opts := analyzer.PipelineOptions{}
	if len(args) > 1 {
		opts.Lowercase = args[1].Truthy()
	}
	if len(args) > 2 {
		opts.Stopwords = args[2].Truthy()
	}

	tokens, err := analyzer.Collect(analyzer.NewPipeline(strings.NewReader(args[0].String()), opts))
	if err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}

	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = map[string]any{
			"text":     t.Text,
			"position": t.Position,
			"start":    t.StartByte,
			"end":      t.EndByte,
		}
	}
	return js.ValueOf(out)
}

func main() {
	js.Global().Set("tokfilterNormalize", js.FuncOf(normalizeToken))
	js.Global().Set("tokfilterFilter", js.FuncOf(filterText))
	select {}
}
