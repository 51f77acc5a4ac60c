package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parsec/internal/logging"
	"github.com/yaklabco/parsec/internal/ui/pretty"
	"github.com/yaklabco/parsec/pkg/config"
	"github.com/yaklabco/parsec/pkg/ebnf"
	"github.com/yaklabco/parsec/pkg/fsutil"
)

type checkFlags struct {
	start  string
	format string
}

// productionInfo represents a production in JSON output.
type productionInfo struct {
	Name    string `json:"name"`
	Lexical bool   `json:"lexical"`
	Start   bool   `json:"start"`
}

type checkReport struct {
	Path        string           `json:"path"`
	Start       string           `json:"start"`
	Productions []productionInfo `json:"productions"`
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check <grammar.ebnf>",
		Short: "Verify an EBNF grammar file",
		Long: `Verify that an EBNF grammar file is well formed and can be compiled.

Every referenced production must be defined and every production must be
reachable from the start production. Without --start, the start is the only
production no other production references.

Examples:
  parsec check list.ebnf
  parsec check --start Expr expr.ebnf
  parsec check --format json list.ebnf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.start, "start", "", "start production")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatText), "output format: text, json")

	return cmd
}

func runCheck(cmd *cobra.Command, path string, flags *checkFlags) error {
	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return fmt.Errorf("invalid format %q: must be text or json", flags.format)
	}

	grammar, err := ebnf.Load(cmd.Context(), path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, fsutil.ErrIsDirectory) ||
			errors.Is(err, fsutil.ErrPermissionDenied) {
			return withExitCode(ExitIOError, err)
		}
		return withExitCode(ExitConfigError, err)
	}

	start, err := startProduction(grammar, flags.start)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	if _, err := ebnf.Compile(grammar, start); err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("%s: %w", path, err))
	}

	names := ebnf.Productions(grammar)
	logging.Default().Debug("grammar verified",
		logging.FieldPath, path,
		logging.FieldStart, start,
		logging.FieldProductions, len(names),
	)

	report := checkReport{Path: path, Start: start, Productions: make([]productionInfo, 0, len(names))}
	for _, name := range names {
		report.Productions = append(report.Productions, productionInfo{
			Name:    name,
			Lexical: ebnf.IsLexical(name),
			Start:   name == start,
		})
	}

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		if err := writeJSON(out, report); err != nil {
			return withExitCode(ExitIOError, err)
		}
		return nil
	}

	if err := writeCheckText(cmd, out, report); err != nil {
		return withExitCode(ExitIOError, err)
	}
	return nil
}

func writeCheckText(cmd *cobra.Command, out io.Writer, report checkReport) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	rows := make([][]string, 0, len(report.Productions))
	for _, prod := range report.Productions {
		kind := "syntactic"
		if prod.Lexical {
			kind = "lexical"
		}
		marker := ""
		if prod.Start {
			marker = "*"
		}
		rows = append(rows, []string{prod.Name, kind, marker})
	}

	table := pretty.NewTableFormatter(styles, terminalWidth(out))
	text := table.FormatTable([]string{"PRODUCTION", "KIND", "START"}, rows)
	text += fmt.Sprintf("\n%s %s: %d productions, start %s\n",
		styles.Success.Render("ok"), styles.FilePath.Render(report.Path), len(report.Productions), report.Start)

	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
