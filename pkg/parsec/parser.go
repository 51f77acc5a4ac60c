package parsec

import (
	"fmt"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Unit is the result of parsers that produce no value.
type Unit struct{}

// RunFunc is the body of a parser. It reads from s and returns a value or an
// error. Returning a *Error with Kind Weak after consuming input is allowed:
// Parse reclassifies it as Fatal.
type RunFunc[T any] func(s *stream.Stream) (T, error)

// Parser is a reusable, stateless parsing capability producing a T.
//
// A *Parser may be shared between any number of combinators and invoked
// recursively; it holds no per-invocation state.
type Parser[T any] struct {
	name string
	run  RunFunc[T]
}

// New returns a parser with the given name and body. The name is used in
// "expected ..." diagnostics.
func New[T any](name string, run RunFunc[T]) *Parser[T] {
	return &Parser[T]{name: name, run: run}
}

// Name returns the parser's diagnostic name.
func (p *Parser[T]) Name() string {
	return p.name
}

// String implements fmt.Stringer.
func (p *Parser[T]) String() string {
	return p.name
}

// Parse invokes the parser against s.
//
// On success the fail flag of s is cleared. On failure it is set and the
// returned *Error is classified by consumption: Weak when s.Tell() is
// unchanged since entry, Fatal otherwise.
func (p *Parser[T]) Parse(s *stream.Stream) (T, error) {
	if p.run == nil {
		panic(fmt.Sprintf("parsec: parser %q invoked before it was defined", p.name))
	}

	start := s.Tell()
	value, err := p.run(s)
	if err != nil {
		s.MarkFail()
		var zero T
		return zero, classify(s, start, err)
	}

	s.ClearFail()
	return value, nil
}
