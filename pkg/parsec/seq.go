package parsec

import (
	"strings"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Then runs p and, if it succeeds, q, returning q's value. q is not tried
// when p fails. Once p has consumed input, any failure of q is fatal.
func Then[U, T any](p *Parser[U], q *Parser[T]) *Parser[T] {
	return New(p.name+" "+q.name, func(s *stream.Stream) (T, error) {
		if _, err := p.Parse(s); err != nil {
			var zero T
			return zero, err
		}
		return q.Parse(s)
	})
}

// ThenSkip runs p then q and returns p's value.
func ThenSkip[T, U any](p *Parser[T], q *Parser[U]) *Parser[T] {
	return New(p.name+" "+q.name, func(s *stream.Stream) (T, error) {
		v, err := p.Parse(s)
		if err != nil {
			return v, err
		}
		if _, err := q.Parse(s); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	})
}

// Seq runs void parsers in order.
func Seq(ps ...*Parser[Unit]) *Parser[Unit] {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.name
	}

	return New(strings.Join(names, " "), func(s *stream.Stream) (Unit, error) {
		for _, p := range ps {
			if _, err := p.Parse(s); err != nil {
				return Unit{}, err
			}
		}
		return Unit{}, nil
	})
}

// Between runs open, p and closing in order and returns p's value.
func Between[O, T, C any](open *Parser[O], p *Parser[T], closing *Parser[C]) *Parser[T] {
	return Then(open, ThenSkip(p, closing))
}

// Lexeme runs p and skips the blanks after it.
func Lexeme[T any](p *Parser[T]) *Parser[T] {
	return ThenSkip(p, Blanks())
}

// Complete runs p and requires the input to end afterwards.
func Complete[T any](p *Parser[T]) *Parser[T] {
	return ThenSkip(p, EOF())
}
