package pretty

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

// sourceIndent aligns source context under the diagnostic text.
const sourceIndent = "        "

// FormatParseError formats a parse failure for terminal output. When source
// holds the complete input, the offending line is shown with a caret under
// the failure column.
func (s *Styles) FormatParseError(perr *parsec.Error, source []byte, tabWidth int) string {
	var builder strings.Builder

	builder.WriteString("  " + s.formatLocation(perr) + "  " + s.FormatKind(perr.Kind) + "  " +
		s.Message.Render(perr.Message()) + "\n")

	if source != nil {
		if line, ok := SourceLine(source, perr.Pos.Line); ok {
			builder.WriteString(s.FormatSourceContext(ExpandTabs(line, tabWidth), perr.Pos.Column))
		}
	}

	if perr.Backtracked != nil {
		builder.WriteString("    " + s.Dim.Render("backtracked from") + " " +
			s.Location.Render(perr.Backtracked.Pos.String()) + ": " +
			s.Message.Render(perr.Backtracked.Message()) + "\n")
	}

	return builder.String()
}

func (s *Styles) formatLocation(perr *parsec.Error) string {
	if perr.Source == "" {
		return s.Location.Render(perr.Pos.String())
	}
	return fmt.Sprintf("%s:%s", s.FilePath.Render(perr.Source), s.Location.Render(perr.Pos.String()))
}

// FormatKind returns a styled failure kind.
func (s *Styles) FormatKind(kind parsec.Kind) string {
	switch kind {
	case parsec.Fatal:
		return s.Error.Render("syntax error")
	case parsec.Weak:
		return s.Warning.Render("no match")
	default:
		return s.Info.Render(kind.String())
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := sourceIndent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// SourceLine returns the 1-based line n of source without its terminator.
func SourceLine(source []byte, n int) (string, bool) {
	if n < 1 {
		return "", false
	}

	for i := 1; ; i++ {
		end := bytes.IndexByte(source, '\n')
		if i == n {
			if end < 0 {
				end = len(source)
			}
			return strings.TrimSuffix(string(source[:end]), "\r"), true
		}
		if end < 0 {
			return "", false
		}
		source = source[end+1:]
	}
}

// ExpandTabs replaces tabs with spaces so that byte columns line up with
// the columns a stream reports for the same text.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.Contains(line, "\t") {
		return line
	}

	var builder strings.Builder
	pos := stream.StartPosition()
	for i := range len(line) {
		c := line[i]
		next := pos.Advance(c, tabWidth)
		if c == '\t' {
			builder.WriteString(strings.Repeat(" ", next.Column-pos.Column))
		} else {
			builder.WriteByte(c)
		}
		pos = next
	}

	return builder.String()
}
