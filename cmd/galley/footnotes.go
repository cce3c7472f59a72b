package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkale/galley/tex"
)

var footnotesCmd = &cobra.Command{
	Use:   "footnotes input.tex [output.txt]",
	Short: "Extract footnote text from a converted LaTeX file",
	Long: `Extract the text of every \footnote{...} in a converted LaTeX file,
with markup stripped, one footnote per paragraph. This produces the plain
footnote listing editors proofread against the original manuscript.

With no output path the listing is printed to stdout.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFootnotes,
}

func init() {
	rootCmd.AddCommand(footnotesCmd)
}

func runFootnotes(cmd *cobra.Command, args []string) error {
	input := args[0]

	src, err := os.ReadFile(input)
	if err != nil {
		logger.WithField("input", input).Error(err)
		return err
	}

	notes := tex.ExtractFootnotes(string(src))
	listing := tex.FormatFootnotes(notes)

	logger.WithFields(map[string]interface{}{
		"input":     input,
		"footnotes": len(notes),
	}).Debug("extracted footnotes")

	if len(args) == 2 {
		if err := os.WriteFile(args[1], []byte(listing), 0o644); err != nil {
			logger.WithField("output", args[1]).Error(err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d footnotes -> %s\n", input, len(notes), args[1])
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), strings.TrimRight(listing, "\n")+"\n")
	return nil
}
