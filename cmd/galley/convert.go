package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkale/galley"
)

var convertCmd = &cobra.Command{
	Use:   "convert input.{docx,odt} [output.tex]",
	Short: "Convert a manuscript to LaTeX",
	Long: `Convert a .docx or .odt manuscript to LaTeX. If no output path is given,
the result is written next to the input with a .tex extension.

A style mappings file (YAML) overrides the built-in style table; pass it
with --mappings or set it in the config file.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	convertCmd.Flags().String("mappings", "", "YAML file mapping paragraph styles to LaTeX templates")
	convertCmd.Flags().Bool("no-typography", false, "skip the typography pass (dashes, quotes, spacing ties)")
	convertCmd.Flags().Bool("no-cleanup", false, "skip the cleanup pass (span merging, footnote hoisting)")

	viper.BindPFlag("mappings", convertCmd.Flags().Lookup("mappings"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := outputPath(input, args)

	conv := galley.Open(input).WithLogger(logger)

	if mappings := viper.GetString("mappings"); mappings != "" {
		conv = conv.MappingFile(mappings)
	}
	if skip, _ := cmd.Flags().GetBool("no-typography"); skip {
		conv = conv.NoTypography()
	}
	if skip, _ := cmd.Flags().GetBool("no-cleanup"); skip {
		conv = conv.NoCleanup()
	}

	warnings, err := conv.ConvertFile(output)
	if err != nil {
		logger.WithField("input", input).Error(err)
		return err
	}

	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}

	stats := conv.Stats()
	logger.WithFields(map[string]interface{}{
		"sections":  stats.Sections,
		"footnotes": stats.Footnotes,
		"tables":    stats.Tables,
	}).Debug("conversion statistics")

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sections, %d footnotes, %d tables -> %s\n",
		input, stats.Sections, stats.Footnotes, stats.Tables, output)
	return nil
}

// outputPath returns the explicit output argument if present, otherwise
// the input path with its extension replaced by .tex.
func outputPath(input string, args []string) string {
	if len(args) == 2 {
		return args[1]
	}
	if i := strings.LastIndex(input, "."); i > 0 {
		return input[:i] + ".tex"
	}
	return input + ".tex"
}
