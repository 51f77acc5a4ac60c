package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

const summaryDividerWidth = 40

// ParseStats describes a single parse run.
type ParseStats struct {
	Source   string
	Grammar  string
	Consumed int64
	End      stream.Position
	Duration time.Duration
	Err      error
}

// FormatSummaryOneLine formats parse statistics as a single line.
// Example: "parsed 42 bytes of input.txt with arith (3 lines) in 1ms".
func (s *Styles) FormatSummaryOneLine(stats ParseStats) string {
	source := stats.Source
	if source == "" {
		source = "input"
	}

	byteWord := "bytes"
	if stats.Consumed == 1 {
		byteWord = "byte"
	}

	lineWord := "lines"
	if stats.End.Line == 1 {
		lineWord = "line"
	}

	detail := s.Dim.Render(fmt.Sprintf(" (%d %s) in %s", stats.End.Line, lineWord, stats.Duration.Round(time.Microsecond)))

	if stats.Err != nil {
		return s.Failure.Render("failed") +
			fmt.Sprintf(" after %d %s of %s with %s", stats.Consumed, byteWord, s.FilePath.Render(source), stats.Grammar) +
			detail + "\n"
	}

	return s.Success.Render("parsed") +
		fmt.Sprintf(" %d %s of %s with %s", stats.Consumed, byteWord, s.FilePath.Render(source), stats.Grammar) +
		detail + "\n"
}

// FormatSummary formats parse statistics as a summary block.
func (s *Styles) FormatSummary(stats ParseStats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.Bold.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Grammar:           " + s.Value.Render(stats.Grammar) + "\n")
	builder.WriteString("  Bytes consumed:    " + s.Value.Render(strconv.FormatInt(stats.Consumed, 10)) + "\n")
	builder.WriteString("  Stopped at:        " + s.Location.Render(stats.End.String()) + "\n")
	builder.WriteString("  Duration:          " + s.Value.Render(stats.Duration.Round(time.Microsecond).String()) + "\n")

	builder.WriteString("\n")

	switch parsec.KindOf(stats.Err) {
	case parsec.Fatal:
		builder.WriteString(s.Failure.Render("Parse failed with a syntax error"))
	case parsec.Weak:
		builder.WriteString(s.Warning.Render("Input did not match"))
	default:
		if stats.Err != nil {
			builder.WriteString(s.Failure.Render("Parse failed"))
		} else {
			builder.WriteString(s.Success.Render("Parse succeeded"))
		}
	}
	builder.WriteString("\n")

	return builder.String()
}
