package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/parsec/internal/logging"
	"github.com/yaklabco/parsec/internal/ui/pretty"
	"github.com/yaklabco/parsec/pkg/config"
	"github.com/yaklabco/parsec/pkg/stream"
)

// stdinName names standard input in diagnostics.
const stdinName = "<stdin>"

type parseFlags struct {
	grammar    string
	ebnfPath   string
	start      string
	skipBlanks bool
	trace      bool
	format     string
	tabWidth   int
	requireEOF bool
	streaming  bool
	stats      bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file or standard input with a grammar",
		Long:  parseLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.grammar, "grammar", "g", config.DefaultGrammar, "built-in grammar to parse with")
	cmd.Flags().StringVar(&flags.ebnfPath, "ebnf", "", "EBNF grammar file to parse with")
	cmd.Flags().StringVar(&flags.start, "start", "", "start production of the EBNF grammar")
	cmd.Flags().BoolVar(&flags.skipBlanks, "skip-blanks", false, "skip white space between EBNF tokens")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "log every production as it runs")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatText), "output format: text, json")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", stream.DefaultTabWidth, "tab stop interval for column numbers")
	cmd.Flags().BoolVar(&flags.requireEOF, "require-eof", true, "treat trailing input as an error")
	cmd.Flags().BoolVar(&flags.streaming, "stream", false, "read the input as a stream instead of buffering it")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a one-line summary to stderr")

	return cmd
}

const parseLongDescription = `Parse a file, or standard input when no file is given, and print the result.

The grammar is a built-in grammar (see "parsec grammars") or an EBNF grammar
file. Productions of an EBNF grammar that start with a lowercase letter are
lexical; with --skip-blanks the others skip white space between tokens.

Examples:
  parsec parse -g arith expr.txt              # Evaluate an expression
  echo '[1, 2, 3]' | parsec parse -g intlist  # Parse standard input
  parsec parse --ebnf list.ebnf --start List in.txt
  parsec parse -g keyvalue --format json settings.txt`

// parseFlagsToConfig returns a Config holding only the flags that were set,
// so that unset flags do not override configuration files.
func parseFlagsToConfig(cmd *cobra.Command, flags *parseFlags) *config.Config {
	cfg := &config.Config{Trace: flags.trace}
	changed := cmd.Flags().Changed

	if changed("grammar") {
		cfg.Grammar = flags.grammar
	}
	if changed("ebnf") {
		cfg.EBNF.Path = flags.ebnfPath
	}
	if changed("start") {
		cfg.EBNF.Start = flags.start
	}
	if changed("skip-blanks") {
		cfg.EBNF.SkipBlanks = config.BoolPtr(flags.skipBlanks)
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("tab-width") {
		cfg.TabWidth = flags.tabWidth
	}
	if changed("require-eof") {
		cfg.RequireEOF = config.BoolPtr(flags.requireEOF)
	}

	return cfg
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd, parseFlagsToConfig(cmd, flags))
	if err != nil {
		return err
	}

	tgt, err := resolveTarget(cmd.Context(), cfg)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	in, err := openInput(cmd, args, cfg, flags.streaming)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}
	defer in.Close()

	logger.Debug("parsing",
		logging.FieldInput, in.name,
		logging.FieldGrammar, tgt.name,
		logging.FieldSeekable, in.stream.CanSeek(),
	)

	started := time.Now()
	value, parseErr := tgt.run(in.stream, cfg.RequireEOFEnabled())
	stats := pretty.ParseStats{
		Source:   in.name,
		Grammar:  tgt.name,
		Consumed: in.stream.Tell(),
		End:      in.stream.Position(),
		Duration: time.Since(started),
		Err:      parseErr,
	}

	if err := in.stream.Err(); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("read %s: %w", in.name, err))
	}

	logger.Debug("parse finished",
		logging.FieldConsumed, stats.Consumed,
		logging.FieldPosition, stats.End.String(),
		"duration", stats.Duration,
	)

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, errOut))

	if cfg.Format == config.FormatJSON {
		report := parseReport{
			Source:  in.name,
			Grammar: tgt.name,
			OK:      parseErr == nil,
			End:     toJSONPosition(stats.End),
		}
		if parseErr != nil {
			report.Error = toFailureEntry(parseErr)
		} else {
			report.Value = value
		}
		if err := writeJSON(out, report); err != nil {
			return withExitCode(ExitIOError, err)
		}
	} else {
		var werr error
		if parseErr != nil {
			werr = writeTextFailure(errOut, styles, parseErr, in.source, cfg.TabWidth)
		} else {
			werr = writeTextValue(out, pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out)), value)
		}
		if werr != nil {
			return withExitCode(ExitIOError, werr)
		}
	}

	if flags.stats {
		summary := styles.FormatSummaryOneLine(stats)
		if terminalWidth(errOut) > 0 {
			summary = styles.FormatSummary(stats)
		}
		if _, err := io.WriteString(errOut, summary); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("write summary: %w", err))
		}
	}

	if parseErr != nil {
		return withExitCode(ExitParseFailure, ErrParseFailed)
	}
	return nil
}

// input is an opened parse input.
type input struct {
	name   string
	stream *stream.Stream

	// source is the buffered input, nil when streaming.
	source []byte

	closer io.Closer
}

// Close releases the underlying file, if any.
func (in *input) Close() {
	if in.closer != nil {
		_ = in.closer.Close()
	}
}

func openInput(cmd *cobra.Command, args []string, cfg *config.Config, streaming bool) (*input, error) {
	in := &input{name: stdinName}

	var reader io.Reader
	if len(args) == 0 || args[0] == "-" {
		reader = cmd.InOrStdin()
		if f, ok := reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			logging.NewInteractive().Info("reading from terminal; end input with Ctrl-D")
		}
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		in.name = args[0]
		in.closer = f
		reader = f
	}

	opts := []stream.Option{
		stream.WithName(in.name),
		stream.WithTabWidth(cfg.TabWidth),
	}
	if cfg.Trace {
		opts = append(opts, stream.WithLogger(logging.NewWithWriter(cmd.ErrOrStderr(), "debug")))
	}

	if streaming {
		in.stream = stream.New(stream.Open(reader), opts...)
		return in, nil
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("read %s: %w", in.name, err)
	}
	in.source = data
	in.stream = stream.NewBytes(data, opts...)
	return in, nil
}
