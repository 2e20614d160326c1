package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokfilter/internal/adapter/analyzer"
	"tokfilter/internal/adapter/fs"
	"tokfilter/internal/adapter/memstore"
	"tokfilter/internal/domain"
	"tokfilter/internal/logging"
	"tokfilter/internal/port"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestFilter_Directory(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.txt":     "a.u.b. - bel(len) 'x' 123 ...",
		"sub/b.txt": "De kat (zwart) zat.",
		"c.bin":     "ignored",
	})

	store := memstore.NewMemoryStore()
	uc := NewFilterUseCase(fs.NewWalker([]string{"**/*.txt"}, nil), fs.Opener{}, store,
		analyzer.PipelineOptions{}, logging.Discard())

	var calls []string
	result, err := uc.Filter(context.Background(), root, func(processed, total int, currentFile string) {
		assert.Equal(t, 2, total)
		calls = append(calls, currentFile)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, calls)
	assert.Equal(t, []string{"aub", "bellen", "x", "123"}, store.Texts("a.txt"))
	assert.Equal(t, []string{"De", "kat", "zwart", "zat"}, store.Texts("sub/b.txt"))
	assert.Equal(t, 1, store.Flushes())

	assert.Equal(t, 2, result.FilesProcessed)
	assert.Equal(t, 0, result.FilesFailed)
	assert.Equal(t, 10, result.TokensRead)
	assert.Equal(t, 8, result.TokensWritten)
	assert.Equal(t, 2, result.TokensDropped)
	assert.Equal(t, []domain.FileResult{
		{Path: "a.txt", TokensRead: 6, TokensWritten: 4, TokensDropped: 2},
		{Path: "sub/b.txt", TokensRead: 4, TokensWritten: 4, TokensDropped: 0},
	}, result.Files)
}

func TestFilter_WithChainedFilters(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "De kat (zwart) zat op de mat."})

	store := memstore.NewMemoryStore()
	uc := NewFilterUseCase(fs.NewWalker(nil, nil), fs.Opener{}, store,
		analyzer.PipelineOptions{Lowercase: true, Stopwords: true}, logging.Discard())

	_, err := uc.Filter(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"kat", "zwart", "zat", "mat"}, store.Texts("a.txt"))
}

func TestFilter_ReadFailureSkipsFile(t *testing.T) {
	errRead := errors.New("bad sector")
	opener := fakeOpener{
		"/r/a.txt": func() io.Reader {
			return io.MultiReader(strings.NewReader("een twee drie"), iotest.ErrReader(errRead))
		},
		"/r/c.txt": func() io.Reader { return strings.NewReader("vier.") },
	}
	walker := fakeWalker{"/r/a.txt", "/r/b.txt", "/r/c.txt"}

	store := memstore.NewMemoryStore()
	uc := NewFilterUseCase(walker, opener, store, analyzer.PipelineOptions{}, logging.Discard())

	result, err := uc.Filter(context.Background(), "/r", nil)
	require.NoError(t, err)

	// Tokens before the failure were already written; the pending one was not.
	assert.Equal(t, []string{"een", "twee"}, store.Texts("a.txt"))
	assert.Equal(t, []string{"vier"}, store.Texts("c.txt"))

	assert.Equal(t, 1, result.FilesProcessed)
	assert.Equal(t, 2, result.FilesFailed)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "a.txt")
	assert.Contains(t, result.Errors[0], "bad sector")
	assert.Contains(t, result.Errors[1], "b.txt")
}

func TestFilter_SinkFailureAborts(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.txt": "een twee",
		"b.txt": "drie",
	})

	errFull := errors.New("disk full")
	sink := &failingSink{failAfter: 1, err: errFull}
	uc := NewFilterUseCase(fs.NewWalker(nil, nil), fs.Opener{}, sink, analyzer.PipelineOptions{}, logging.Discard())

	result, err := uc.Filter(context.Background(), root, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSink)
	assert.ErrorIs(t, err, errFull)
	assert.Equal(t, 1, result.TokensWritten)
	assert.Equal(t, 0, result.FilesProcessed)
}

func TestFilter_Cancelled(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "een"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := memstore.NewMemoryStore()
	uc := NewFilterUseCase(fs.NewWalker(nil, nil), fs.Opener{}, store, analyzer.PipelineOptions{}, logging.Discard())

	_, err := uc.Filter(ctx, root, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Count())
}

func TestFilter_WalkError(t *testing.T) {
	uc := NewFilterUseCase(fs.NewWalker(nil, nil), fs.Opener{}, memstore.NewMemoryStore(),
		analyzer.PipelineOptions{}, logging.Discard())

	_, err := uc.Filter(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestFilterReader(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewFilterUseCase(nil, nil, store, analyzer.PipelineOptions{}, logging.Discard())

	fr, err := uc.FilterReader(context.Background(), "-", strings.NewReader("a.u.b. - bel(len) 'x' 123 ..."))
	require.NoError(t, err)

	assert.Equal(t, domain.FileResult{Path: "-", TokensRead: 6, TokensWritten: 4, TokensDropped: 2}, fr)
	assert.Equal(t, []string{"aub", "bellen", "x", "123"}, store.Texts("-"))
	assert.Equal(t, 1, store.Flushes())
}

func TestFilterReader_PropagatesReadError(t *testing.T) {
	errRead := errors.New("pipe closed")
	uc := NewFilterUseCase(nil, nil, memstore.NewMemoryStore(), analyzer.PipelineOptions{}, logging.Discard())

	_, err := uc.FilterReader(context.Background(), "-", iotest.ErrReader(errRead))
	assert.ErrorIs(t, err, errRead)
}

type fakeWalker []string

func (w fakeWalker) Walk(string) ([]port.FileInfo, error) {
	files := make([]port.FileInfo, len(w))
	for i, p := range w {
		files[i] = port.FileInfo{Path: p}
	}
	return files, nil
}

type fakeOpener map[string]func() io.Reader

func (o fakeOpener) Open(path string) (io.ReadCloser, error) {
	open, ok := o[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(open()), nil
}

type failingSink struct {
	failAfter int
	err       error
	written   int
}

func (s *failingSink) Write(string, domain.Token) error {
	if s.written >= s.failAfter {
		return s.err
	}
	s.written++
	return nil
}

func (s *failingSink) Flush() error { return nil }
