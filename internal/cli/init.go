package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parsec/internal/configloader"
	"github.com/yaklabco/parsec/internal/logging"
	"github.com/yaklabco/parsec/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	toml   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new parsec configuration file",
		Long: `Create a .parsec.yml configuration file in the current directory holding
the default settings.

Examples:
  parsec init                      Create .parsec.yml
  parsec init --toml               Create .parsec.toml instead
  parsec init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.toml, "toml", false, "Write TOML instead of YAML")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .parsec.yml or .parsec.toml)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFiles[0]
		if flags.toml {
			outputPath = ".parsec.toml"
		}
	}

	if _, err := config.FileTypeOf(outputPath); err != nil {
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("resolve path: %w", err))
	}

	if err := configloader.WriteConfig(ctx, config.NewConfig(), absPath, flags.force); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		return withExitCode(ExitIOError, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'parsec grammars' to see the built-in grammars")

	return nil
}
