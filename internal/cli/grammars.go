package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parsec/internal/ui/pretty"
	"github.com/yaklabco/parsec/pkg/config"
	"github.com/yaklabco/parsec/pkg/grammars"
)

// grammarInfo represents a built-in grammar in JSON output.
type grammarInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

func newGrammarsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "List built-in grammars",
		Long: `List the built-in grammars with a description and an example input.
Use a name with "parsec parse --grammar".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := grammars.All()
			out := cmd.OutOrStdout()

			switch config.OutputFormat(format) {
			case config.FormatJSON:
				infos := make([]grammarInfo, 0, len(all))
				for _, g := range all {
					infos = append(infos, grammarInfo{Name: g.Name, Description: g.Description, Example: g.Example})
				}
				return withExitCode(ExitIOError, writeJSON(out, infos))
			case config.FormatText:
				return withExitCode(ExitIOError, writeGrammarsText(cmd, out, all))
			default:
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatText), "output format: text, json")

	return cmd
}

func writeGrammarsText(cmd *cobra.Command, out io.Writer, all []grammars.Grammar) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	rows := make([][]string, 0, len(all))
	for _, g := range all {
		rows = append(rows, []string{g.Name, strconv.Quote(g.Example), g.Description})
	}

	table := pretty.NewTableFormatter(styles, terminalWidth(out))
	if _, err := io.WriteString(out, table.FormatTable([]string{"NAME", "EXAMPLE", "DESCRIPTION"}, rows)); err != nil {
		return fmt.Errorf("write grammars: %w", err)
	}
	return nil
}
