package parsec

import (
	"strings"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Text is the set of result types Cat can concatenate.
type Text interface {
	byte | string
}

// Lift turns a character parser into a one-character string parser.
func Lift(p *Parser[byte]) *Parser[string] {
	return Map(p, func(c byte) string { return string([]byte{c}) })
}

// Cat runs p then q and concatenates their results. Either operand may be a
// character or a string parser. Once p has consumed input, a failure of q is
// fatal: Cat is not a point where an alternation can resume.
func Cat[A, B Text](p *Parser[A], q *Parser[B]) *Parser[string] {
	return New(p.name+" "+q.name, func(s *stream.Stream) (string, error) {
		a, err := p.Parse(s)
		if err != nil {
			return "", err
		}
		b, err := q.Parse(s)
		if err != nil {
			return "", err
		}
		return text(a) + text(b), nil
	})
}

// Concat runs every parser in order and joins their results.
func Concat(ps ...*Parser[string]) *Parser[string] {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.name
	}

	return New(strings.Join(names, " "), func(s *stream.Stream) (string, error) {
		var builder strings.Builder
		for _, p := range ps {
			part, err := p.Parse(s)
			if err != nil {
				return "", err
			}
			builder.WriteString(part)
		}
		return builder.String(), nil
	})
}

func text[T Text](v T) string {
	switch x := any(v).(type) {
	case byte:
		return string([]byte{x})
	case string:
		return x
	default:
		return ""
	}
}
