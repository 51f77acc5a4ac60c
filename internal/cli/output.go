package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/parsec/internal/ui/pretty"
	"github.com/yaklabco/parsec/pkg/grammars"
	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

// parseReport is the JSON document written by parse --format json.
type parseReport struct {
	Source  string        `json:"source,omitempty"`
	Grammar string        `json:"grammar"`
	OK      bool          `json:"ok"`
	Value   any           `json:"value,omitempty"`
	End     jsonPosition  `json:"end"`
	Error   *failureEntry `json:"error,omitempty"`
}

type jsonPosition struct {
	Offset int64 `json:"offset"`
	Line   int   `json:"line"`
	Column int   `json:"column"`
}

type failureEntry struct {
	Kind        string        `json:"kind"`
	Position    jsonPosition  `json:"position"`
	Message     string        `json:"message"`
	Expected    []string      `json:"expected,omitempty"`
	Found       string        `json:"found,omitempty"`
	Seekable    *bool         `json:"seekable,omitempty"`
	Backtracked *failureEntry `json:"backtracked,omitempty"`
}

func toJSONPosition(pos stream.Position) jsonPosition {
	return jsonPosition{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func toFailureEntry(err error) *failureEntry {
	var perr *parsec.Error
	if !errors.As(err, &perr) {
		return &failureEntry{Kind: "error", Message: err.Error()}
	}

	entry := &failureEntry{
		Kind:     perr.Kind.String(),
		Position: toJSONPosition(perr.Pos),
		Message:  perr.Message(),
		Expected: perr.Expected,
		Found:    perr.FoundString(),
	}
	if errors.Is(err, stream.ErrNotSeekable) {
		seekable := false
		entry.Seekable = &seekable
	}
	if perr.Backtracked != nil {
		entry.Backtracked = toFailureEntry(perr.Backtracked)
	}
	return entry
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// writeTextValue prints a parse result on its own lines.
func writeTextValue(w io.Writer, styles *pretty.Styles, value any) error {
	var err error
	switch v := value.(type) {
	case []grammars.Pair:
		for _, pair := range v {
			if _, err = fmt.Fprintf(w, "%s = %s\n", styles.Key.Render(pair.Key), styles.Value.Render(pair.Value)); err != nil {
				break
			}
		}
	case string:
		_, err = fmt.Fprintln(w, styles.Value.Render(v))
	default:
		_, err = fmt.Fprintln(w, styles.Value.Render(fmt.Sprint(v)))
	}
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// writeTextFailure reports err with source context when source is known.
func writeTextFailure(w io.Writer, styles *pretty.Styles, err error, source []byte, tabWidth int) error {
	var perr *parsec.Error
	var text string
	if errors.As(err, &perr) {
		text = styles.FormatParseError(perr, source, tabWidth)
		if errors.Is(err, stream.ErrNotSeekable) {
			text += "    " + styles.Dim.Render("input cannot be rewound; parse from a file or drop --stream") + "\n"
		}
	} else {
		text = "  " + styles.Error.Render("error") + "  " + styles.Message.Render(err.Error()) + "\n"
	}

	if _, werr := io.WriteString(w, text); werr != nil {
		return fmt.Errorf("write diagnostic: %w", werr)
	}
	return nil
}

// terminalWidth returns the width of the terminal behind w, or 0 when w is
// not a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}
