package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"tokfilter/internal/adapter/analyzer"
	"tokfilter/internal/domain"
	"tokfilter/internal/port"
)

// ErrSink marks a failure to write to the token sink. It aborts a run.
var ErrSink = errors.New("write token")

// ProgressFunc is called after each file with the number of files done so far.
type ProgressFunc func(processed, total int, currentFile string)

// FilterUseCase runs the token pipeline over files and writes the
// surviving tokens to a sink.
type FilterUseCase struct {
	walker port.FileWalker
	opener port.FileOpener
	sink   port.TokenSink
	opts   analyzer.PipelineOptions
	log    log.FieldLogger
}

// NewFilterUseCase creates a new filter use case.
func NewFilterUseCase(
	walker port.FileWalker,
	opener port.FileOpener,
	sink port.TokenSink,
	opts analyzer.PipelineOptions,
	logger log.FieldLogger,
) *FilterUseCase {
	return &FilterUseCase{
		walker: walker,
		opener: opener,
		sink:   sink,
		opts:   opts,
		log:    logger,
	}
}

// FilterResult contains the results of a filter run.
type FilterResult struct {
	FilesProcessed int
	FilesFailed    int
	TokensRead     int
	TokensWritten  int
	TokensDropped  int
	Files          []domain.FileResult
	Errors         []string
}

func (r *FilterResult) add(fr domain.FileResult) {
	r.Files = append(r.Files, fr)
	r.TokensRead += fr.TokensRead
	r.TokensWritten += fr.TokensWritten
	r.TokensDropped += fr.TokensDropped
}

// Filter filters every matching file under root. Files that cannot be
// opened or read are recorded in Errors and skipped. A sink failure or a
// cancelled context stops the run and is returned with the partial result.
func (u *FilterUseCase) Filter(ctx context.Context, root string, progress ProgressFunc) (*FilterResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	result := &FilterResult{}
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := displayPath(absRoot, file.Path)
		fr, err := u.filterFile(ctx, file.Path, name)
		result.add(fr)
		if err != nil {
			if errors.Is(err, ErrSink) || ctx.Err() != nil {
				return result, err
			}
			result.FilesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			u.log.WithField("path", name).WithError(err).Warn("skipping file")
		} else {
			result.FilesProcessed++
		}

		if progress != nil {
			progress(i+1, len(files), name)
		}
	}

	if err := u.sink.Flush(); err != nil {
		return result, fmt.Errorf("%w: flush: %w", ErrSink, err)
	}
	return result, nil
}

// FilterReader filters a single stream, such as stdin, under the given name.
func (u *FilterUseCase) FilterReader(ctx context.Context, name string, r io.Reader) (domain.FileResult, error) {
	fr, err := u.run(ctx, name, r)
	if err != nil {
		return fr, err
	}
	if err := u.sink.Flush(); err != nil {
		return fr, fmt.Errorf("%w: flush: %w", ErrSink, err)
	}
	return fr, nil
}

func (u *FilterUseCase) filterFile(ctx context.Context, path, name string) (domain.FileResult, error) {
	rc, err := u.opener.Open(path)
	if err != nil {
		return domain.FileResult{Path: name}, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	return u.run(ctx, name, rc)
}

func (u *FilterUseCase) run(ctx context.Context, name string, r io.Reader) (fr domain.FileResult, err error) {
	p := analyzer.NewPipeline(r, u.opts)
	fr.Path = name

	defer func() {
		fr.TokensRead = p.Read()
		fr.TokensDropped = p.Stats().Dropped()
		u.log.WithFields(log.Fields{
			"path":           name,
			"tokens_read":    fr.TokensRead,
			"tokens_written": fr.TokensWritten,
			"dropped":        fr.TokensDropped,
		}).Debug("filtered")
	}()

	for tok, err := range analyzer.All(p) {
		if err != nil {
			return fr, fmt.Errorf("failed to read tokens: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return fr, err
		}
		if err := u.sink.Write(name, tok); err != nil {
			return fr, fmt.Errorf("%w %s: %w", ErrSink, name, err)
		}
		fr.TokensWritten++
	}

	return fr, nil
}

// displayPath returns path relative to root with forward slashes, or path
// itself when it is not under root.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
