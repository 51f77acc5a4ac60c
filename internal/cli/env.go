package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parsec/internal/configloader"
	"github.com/yaklabco/parsec/internal/ui/pretty"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Long: `List the PARSEC_* environment variables. They override configuration
files and are overridden by command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

			vars := configloader.ListEnvVars()
			rows := make([][]string, 0, len(vars))
			for _, v := range vars {
				rows = append(rows, []string{v.Name, v.Description})
			}

			table := pretty.NewTableFormatter(styles, terminalWidth(out))
			if _, err := io.WriteString(out, table.FormatTable([]string{"VARIABLE", "DESCRIPTION"}, rows)); err != nil {
				return withExitCode(ExitIOError, fmt.Errorf("write variables: %w", err))
			}
			return nil
		},
	}
}
