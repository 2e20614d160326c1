package cli

import (
	"bufio"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tokfilter/internal/adapter/analyzer"
	"tokfilter/internal/port"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [token...]",
	Short: "Show how single tokens are normalized",
	Long: `Normalize each token given as an argument, or each line of stdin when no
arguments are given, and report whether it survives the filter.

Example:
  tokfilter normalize a.u.b. - "bel(len)" "'x'"`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var src port.TokenStream
	if len(args) > 0 {
		src = analyzer.NewSliceStream(args...)
	} else {
		lines, err := readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		src = analyzer.NewSliceStream(lines...)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for tok, err := range analyzer.All(src) {
		if err != nil {
			return err
		}
		normalized := analyzer.Normalize(tok.Text)
		verdict := "drop"
		if analyzer.HasLetterOrDigit(normalized) {
			verdict = "keep"
		}
		fmt.Fprintf(tw, "%q\t%q\t%s\n", tok.Text, normalized, verdict)
	}
	return tw.Flush()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
