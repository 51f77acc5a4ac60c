package parsec

import (
	"errors"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Map runs p and applies f to its result. f is not called when p fails;
// p's failure is returned as is.
func Map[U, T any](p *Parser[U], f func(U) T) *Parser[T] {
	return New(p.name, func(s *stream.Stream) (T, error) {
		u, err := p.Parse(s)
		if err != nil {
			var zero T
			return zero, err
		}
		return f(u), nil
	})
}

// Return runs the void parser p and, on success, returns f().
func Return[T any](p *Parser[Unit], f func() T) *Parser[T] {
	return Map(p, func(Unit) T { return f() })
}

// Value runs p and replaces its result with v.
func Value[U, T any](p *Parser[U], v T) *Parser[T] {
	return Map(p, func(U) T { return v })
}

// Chain runs p and hands its result, together with the stream, to f so that
// f can decide what to parse next. f takes part in the failure protocol: if
// it fails after anything was consumed since Chain started, the failure is
// fatal. f may return any error; non-*Error values become the Cause.
func Chain[U, T any](p *Parser[U], f func(s *stream.Stream, u U) (T, error)) *Parser[T] {
	return New(p.name, func(s *stream.Stream) (T, error) {
		u, err := p.Parse(s)
		if err != nil {
			var zero T
			return zero, err
		}
		return f(s, u)
	})
}

// Skip runs p and discards its value.
func Skip[T any](p *Parser[T]) *Parser[Unit] {
	return Map(p, func(T) Unit { return Unit{} })
}

// Pure succeeds with v without consuming anything.
func Pure[T any](v T) *Parser[T] {
	return New("nothing", func(*stream.Stream) (T, error) {
		return v, nil
	})
}

// Fail always fails weakly, expecting name.
func Fail[T any](name string) *Parser[T] {
	return New(name, func(s *stream.Stream) (T, error) {
		var zero T
		return zero, noMatch(s, name)
	})
}

// Optional runs p and returns def if p fails weakly.
func Optional[T any](p *Parser[T], def T) *Parser[T] {
	return Or(p, Pure(def))
}

// Label renames p for diagnostics: a weak failure of p reports name as the
// only expectation. Fatal failures keep their inner expectation.
func Label[T any](p *Parser[T], name string) *Parser[T] {
	return New(name, func(s *stream.Stream) (T, error) {
		v, err := p.Parse(s)
		if err == nil {
			return v, nil
		}

		var perr *Error
		if errors.As(err, &perr) && perr.Kind == Weak {
			relabeled := *perr
			relabeled.Expected = []string{name}
			return v, &relabeled
		}
		return v, err
	})
}
