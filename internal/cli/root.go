// Package cli provides the Cobra command structure for parsec.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parsec/internal/logging"
	"github.com/yaklabco/parsec/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root parsec command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "parsec",
		Short: "Parse text with parser combinators and EBNF grammars",
		Long: `parsec parses text with grammars built from parser combinators.

It runs the built-in grammars that ship with the library, or compiles an EBNF
grammar file into a parser on the fly. Failures are reported with their line
and column, what was expected and what was found, and are either weak (nothing
was consumed) or syntax errors (input was consumed before the failure).`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newGrammarsCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(config.ColorMode(color), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
