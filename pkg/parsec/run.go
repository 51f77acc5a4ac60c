package parsec

import (
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Run applies p to s as a top-level caller.
//
// A stream whose fail flag is already set is rejected with a fatal failure
// caused by ErrStreamFailed; call s.ClearFail to continue after a weak
// failure. Any failure is returned as a *Error carrying its position.
//
// A read error from the source ends the input early, so a parse that
// succeeded on the prefix is still reported as a fatal failure caused by
// ErrRead, joined with any parse failure.
func Run[T any](p *Parser[T], s *stream.Stream) (T, error) {
	if s.Failed() {
		var zero T
		return zero, &Error{
			Kind:   Fatal,
			Pos:    s.Position(),
			Source: s.Name(),
			Cause:  ErrStreamFailed,
		}
	}

	value, err := p.Parse(s)
	if rerr := s.Err(); rerr != nil {
		var zero T
		readErr := &Error{
			Kind:   Fatal,
			Pos:    s.Position(),
			Source: s.Name(),
			AtEOF:  true,
			Cause:  fmt.Errorf("%w: %w", ErrRead, rerr),
		}
		if err != nil {
			return zero, errors.Join(readErr, err)
		}
		return zero, readErr
	}
	return value, err
}

// ParseString runs p over input. Trailing input is not an error; wrap p in
// Complete to require it to be consumed.
func ParseString[T any](p *Parser[T], input string, opts ...stream.Option) (T, error) {
	return Run(p, stream.NewString(input, opts...))
}

// ParseBytes runs p over input.
func ParseBytes[T any](p *Parser[T], input []byte, opts ...stream.Option) (T, error) {
	return Run(p, stream.NewBytes(input, opts...))
}

// ParseReader runs p over r. Try can only rewind if r can seek.
func ParseReader[T any](p *Parser[T], r io.Reader, opts ...stream.Option) (T, error) {
	return Run(p, stream.New(stream.Open(r), opts...))
}
