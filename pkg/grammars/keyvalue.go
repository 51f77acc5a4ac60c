package grammars

import (
	"strings"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

// Pair is one key = value line.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Line  int    `json:"line"`
}

// KeyValue parses lines of the form "key = value". Empty lines and comments
// starting with # are ignored; a comment may also follow a value. Keys are
// letters, digits, '_', '.' and '-'; the value runs to the end of the line
// with trailing blanks removed.
func KeyValue() *parsec.Parser[[]Pair] {
	key := parsec.Lexeme(parsec.Label(parsec.Many1String(parsec.Or(
		parsec.AlphaNum(),
		parsec.OneOf("_.-"),
	)), "key"))
	equals := parsec.Lexeme(parsec.Char('='))
	value := parsec.ManyString(parsec.NoneOf("\n#"))

	pair := parsec.New("key = value", func(s *stream.Stream) (*Pair, error) {
		line := s.Position().Line

		k, err := key.Parse(s)
		if err != nil {
			return nil, err
		}
		if _, err := equals.Parse(s); err != nil {
			return nil, err
		}
		v, err := value.Parse(s)
		if err != nil {
			return nil, err
		}

		return &Pair{Key: k, Value: strings.TrimRight(v, " \t\r"), Line: line}, nil
	})

	comment := parsec.Then(parsec.Char('#'), parsec.SkipMany(parsec.NoneOf("\n")))

	// Every alternative consumes at least one character.
	item := parsec.Or(
		pair,
		parsec.Value(parsec.OneOf(" \t\r\n"), (*Pair)(nil)),
		parsec.Value(comment, (*Pair)(nil)),
	)

	return parsec.Map(parsec.Many(item), func(items []*Pair) []Pair {
		pairs := make([]Pair, 0, len(items))
		for _, p := range items {
			if p != nil {
				pairs = append(pairs, *p)
			}
		}
		return pairs
	})
}
