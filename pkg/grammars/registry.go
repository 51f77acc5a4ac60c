// Package grammars contains small grammars built with parsec, and a registry
// the command line tool uses to run them by name.
package grammars

import (
	"slices"
	"strings"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

// Grammar is a named, runnable parser.
type Grammar struct {
	// Name is the identifier used on the command line.
	Name string

	// Description is a one-line summary.
	Description string

	// Example is a valid input.
	Example string

	// Run parses from s. With requireEOF, trailing input is an error.
	Run func(s *stream.Stream, requireEOF bool) (any, error)
}

// entry adapts a typed parser to the Grammar shape. The parser is traced
// under the grammar name when the stream logs at debug level.
func entry[T any](name, description, example string, p *parsec.Parser[T]) Grammar {
	p = parsec.Trace(name, p)
	complete := parsec.Complete(p)

	return Grammar{
		Name:        name,
		Description: description,
		Example:     example,
		Run: func(s *stream.Stream, requireEOF bool) (any, error) {
			if requireEOF {
				return parsec.Run(complete, s)
			}
			return parsec.Run(p, s)
		},
	}
}

// All returns the built-in grammars sorted by name.
func All() []Grammar {
	all := []Grammar{
		entry("identifier", "letter or underscore followed by letters, digits or underscores", "_tmp42", Identifier()),
		entry("integer", "optionally signed decimal integer", "-1024", Integer()),
		entry("intlist", "bracketed, comma separated integers", "[1, -2, 3]", IntList()),
		entry("arith", "integer arithmetic with + - * / and parentheses, evaluated", "2 * (3 + 4) - 1", Arith()),
		entry("keyvalue", "key = value lines with # comments", "name = parsec\n# comment\nlevel = 3\n", KeyValue()),
	}

	slices.SortFunc(all, func(a, b Grammar) int {
		return strings.Compare(a.Name, b.Name)
	})
	return all
}

// Names returns the names of the built-in grammars.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, g := range all {
		names[i] = g.Name
	}
	return names
}

// Lookup returns the grammar named name.
func Lookup(name string) (Grammar, bool) {
	for _, g := range All() {
		if g.Name == name {
			return g, true
		}
	}
	return Grammar{}, false
}
