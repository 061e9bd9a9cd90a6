// Command regexvm scans a file with a compiled pattern. It prints the
// compiled instruction listing, then reports the first matching offset
// of every line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/regexvm-go/regexvm/pkg/regexvm"
)

func newRootCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "regexvm <pattern> <file>",
		Short: "Match a regular expression against every line of a file",
		Long: `regexvm compiles <pattern> into a small instruction program, prints it,
then scans <file> line by line. Each line is probed at every character
offset in turn; the first hit per line is reported.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args[0], args[1], verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print pattern analysis before scanning")
	return cmd
}

func run(w io.Writer, pattern, path string, verbose bool) error {
	re, err := regexvm.Compile(pattern)
	if err != nil {
		return err
	}
	if err := re.Explain(w); err != nil {
		return err
	}

	if verbose {
		res, err := regexvm.Analyze(pattern)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "features: %v\nsplits: %d\nloops: %v\n",
			res.FeatureLabels, res.SplitCount, res.HasLoop)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scan(w, re, f)
}

// scan probes every line at each offset, reporting the first hit per
// line. Offsets run through len(line) inclusive: the end-of-line offset
// is where end-anchored empty matches like "$" land, and it gives empty
// lines their one attempt.
func scan(w io.Writer, re *regexvm.Regexp, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := []rune(scanner.Text())
		for off := 0; off <= len(line); off++ {
			matched, err := re.MatchRunes(line, off)
			if err != nil {
				return err
			}
			if matched {
				fmt.Fprintf(w, "%d:%d: %s\n", lineno, off, string(line))
				break
			}
		}
	}
	return scanner.Err()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
