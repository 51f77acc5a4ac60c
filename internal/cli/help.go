package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parsec/internal/ui/pretty"
	"github.com/yaklabco/parsec/pkg/config"
)

// flagColumnGap separates a flag from its description in pflag usage output.
const flagColumnGap = "  "

// HelpFormatter provides styled help output for Cobra commands, using the
// same styles as parse diagnostics.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(mode config.ColorMode, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(mode, writer))}
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.Bold.Render,
		"styleHeading":            h.styles.Info.Render,
		"styleSubcommand":         h.styles.Key.Render,
		"styleDescription":        h.styles.Message.Render,
		"styleExample":            h.styles.Dim.Render,
		"styleDim":                h.styles.Dim.Render,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// styleFlagsUsage styles the FlagUsages output of a pflag.FlagSet.
func (h *HelpFormatter) styleFlagsUsage(flags any) string {
	usages, ok := flags.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(usages.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles "  -f, --flag type   description": flag names as
// keys, the value type dimmed.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	gap := strings.Index(trimmed, flagColumnGap)
	if trimmed == "" || gap < 0 {
		return line
	}
	definition := trimmed[:gap]
	description := strings.TrimLeft(trimmed[gap:], " ")

	tokens := strings.Fields(definition)
	for i, token := range tokens {
		if name, ok := strings.CutPrefix(token, "-"); ok {
			comma := strings.HasSuffix(name, ",")
			tokens[i] = h.styles.Key.Render("-" + strings.TrimSuffix(name, ","))
			if comma {
				tokens[i] += ","
			}
			continue
		}
		tokens[i] = h.styles.Dim.Render(token)
	}

	return indent + strings.Join(tokens, " ") + "   " + h.styles.Message.Render(description)
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()

	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetHelpTemplate(helpTemplate)

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return renderTemplate(command, "usage", usageTemplate, funcs)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := renderTemplate(command, "help", helpTemplate, funcs); err != nil {
			command.PrintErrln(err)
		}
	})
}

func renderTemplate(command *cobra.Command, name, text string, funcs template.FuncMap) error {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
		return fmt.Errorf("render %s template: %w", name, err)
	}
	return nil
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
