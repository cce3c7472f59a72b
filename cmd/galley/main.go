// Package main is the entry point for the galley CLI, the journal's
// manuscript conversion tool. Conversion itself lives in the library
// packages; the CLI handles flags, configuration, and logging.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is shared by all subcommands, configured in PersistentPreRun.
var logger = logrus.New()

// rootCmd is the base command for the galley CLI.
var rootCmd = &cobra.Command{
	Use:   "galley",
	Short: "Convert journal manuscripts to semantic LaTeX markup",
	Long: `galley converts word-processor manuscripts (.docx, .odt) into the semantic
LaTeX markup consumed by the journal's document class: sectioning commands
from heading styles, emphasis commands from character formatting, inline
footnotes, list environments, and the bilingual documentation environment
for tables.

The companion footnotes subcommand extracts footnote text back out of a
converted .tex file for proofreading.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(viper.GetString("log-level"), viper.GetString("log-file"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./galley.yaml or ~/.config/galley/galley.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-file", "", "append logs to this file (rotated) instead of stderr")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("galley")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "galley"))
		}
	}

	viper.SetEnvPrefix("GALLEY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogger configures the shared logger from config values.
func setupLogger(level, file string) {
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if file != "" {
		logger.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
