package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tokfilter/internal/adapter/analyzer"
	"tokfilter/internal/adapter/fs"
	"tokfilter/internal/adapter/sink"
	"tokfilter/internal/usecase"
)

var (
	filterFormat     string
	filterLowercase  bool
	filterStopwords  bool
	filterNoProgress bool
	filterNoColor    bool
)

var filterCmd = &cobra.Command{
	Use:   "filter [path]",
	Short: "Tokenize and filter files",
	Long: `Tokenize every file under path that matches the configured include
patterns, run the tokens through the filter chain and print the survivors.
Use "-" as the path to read from stdin.

Examples:
  tokfilter filter .                     # Filter current directory
  tokfilter filter corpus --format json  # One JSON object per token
  tokfilter filter - --lowercase < a.txt # Filter stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&filterFormat, "format", "f", "", "output format: text, json or trace (overrides config)")
	filterCmd.Flags().BoolVar(&filterLowercase, "lowercase", false, "lowercase surviving tokens")
	filterCmd.Flags().BoolVar(&filterStopwords, "stopwords", false, "drop stopwords")
	filterCmd.Flags().BoolVar(&filterNoProgress, "no-progress", false, "disable the progress bar")
	filterCmd.Flags().BoolVar(&filterNoColor, "no-color", false, "disable colors in trace output")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = filterFormat
	}
	if flags.Changed("lowercase") {
		cfg.Filter.Lowercase = filterLowercase
	}
	if flags.Changed("stopwords") {
		cfg.Filter.Stopwords = filterStopwords
	}
	if flags.Changed("no-progress") {
		cfg.Output.Progress = !filterNoProgress
	}
	if flags.Changed("no-color") {
		cfg.Output.Color = !filterNoColor
	}

	out, err := sink.New(cfg.Output.Format, cmd.OutOrStdout(), cfg.Output.Color)
	if err != nil {
		return err
	}

	opts := analyzer.PipelineOptions{
		Lowercase: cfg.Filter.Lowercase,
		Stopwords: cfg.Filter.Stopwords,
		StopList:  cfg.Filter.StopList,
	}
	walker := fs.NewWalker(cfg.Input.Includes, cfg.Input.Excludes)
	filterUC := usecase.NewFilterUseCase(walker, fs.Opener{}, out, opts, logger)

	if len(args) > 0 && args[0] == "-" {
		fr, err := filterUC.FilterReader(cmd.Context(), "-", cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("filtering stdin failed: %w", err)
		}
		logger.WithFields(log.Fields{
			"tokens_read":    fr.TokensRead,
			"tokens_written": fr.TokensWritten,
			"dropped":        fr.TokensDropped,
		}).Info("stdin filtered")
		return nil
	}

	path := GetRootDir()
	if len(args) > 0 {
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	var progress usecase.ProgressFunc
	if cfg.Output.Progress {
		progress = newProgress(cmd)
	}

	result, err := filterUC.Filter(cmd.Context(), path, progress)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "\nFiltering complete:\n")
	fmt.Fprintf(errOut, "  Files processed: %d\n", result.FilesProcessed)
	fmt.Fprintf(errOut, "  Files failed:    %d\n", result.FilesFailed)
	fmt.Fprintf(errOut, "  Tokens read:     %d\n", result.TokensRead)
	fmt.Fprintf(errOut, "  Tokens written:  %d\n", result.TokensWritten)
	fmt.Fprintf(errOut, "  Tokens dropped:  %d (no letter or digit)\n", result.TokensDropped)

	if len(result.Errors) > 0 {
		fmt.Fprintf(errOut, "\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(errOut, "  - %s\n", e)
		}
	}

	return nil
}

// newProgress returns a progress callback drawing a bar on stderr. The bar
// is created on the first call, once the number of files is known.
func newProgress(cmd *cobra.Command) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	return func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Filtering[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Filtering[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
