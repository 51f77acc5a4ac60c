package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parsec/internal/configloader"
	"github.com/yaklabco/parsec/internal/logging"
	"github.com/yaklabco/parsec/pkg/config"
)

// loadConfig resolves the configuration for cmd, with cliCfg holding the
// values of the flags the user set.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, withExitCode(ExitInternalError, fmt.Errorf("get config flag: %w", err))
	}

	if flag := cmd.Flags().Lookup("color"); flag != nil && flag.Changed {
		cliCfg.Color = config.ColorMode(flag.Value.String())
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	cfg := result.Config

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", "files", result.LoadedFrom)
	}

	logger.Debug("configuration resolved",
		logging.FieldGrammar, cfg.Grammar,
		logging.FieldPath, cfg.EBNF.Path,
		logging.FieldStart, cfg.EBNF.Start,
		logging.FieldTabWidth, cfg.TabWidth,
		logging.FieldRequireEOF, cfg.RequireEOFEnabled(),
		logging.FieldFormat, cfg.Format,
	)

	return cfg, nil
}

// colorMode returns the --color flag for commands that do not load the
// configuration.
func colorMode(cmd *cobra.Command) config.ColorMode {
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return config.ColorAuto
	}
	return config.ColorMode(mode)
}
