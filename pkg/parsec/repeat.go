package parsec

import (
	"github.com/yaklabco/parsec/pkg/stream"
)

// Many applies p until it fails weakly and collects the results, which may
// be none. A fatal failure of p is returned unchanged.
//
// p must consume input whenever it succeeds, or Many never terminates.
func Many[T any](p *Parser[T]) *Parser[[]T] {
	return New("many("+p.name+")", func(s *stream.Stream) ([]T, error) {
		out := make([]T, 0)
		for {
			v, err := p.Parse(s)
			if err != nil {
				if IsWeak(err) {
					return out, nil
				}
				return nil, err
			}
			out = append(out, v)
		}
	})
}

// ManyString is Many for character parsers, collecting into a string.
func ManyString(p *Parser[byte]) *Parser[string] {
	return Map(Many(p), func(cs []byte) string { return string(cs) })
}

// SkipMany is Many without collecting results.
func SkipMany[T any](p *Parser[T]) *Parser[Unit] {
	return New("many("+p.name+")", func(s *stream.Stream) (Unit, error) {
		for {
			if _, err := p.Parse(s); err != nil {
				if IsWeak(err) {
					return Unit{}, nil
				}
				return Unit{}, err
			}
		}
	})
}

// Many1 applies p at least once and folds the results from the left with
// combine, seeding the fold with the first result. If the first application
// fails weakly, so does Many1.
func Many1[T any](p *Parser[T], combine func(acc, next T) T) *Parser[T] {
	return New(p.name, func(s *stream.Stream) (T, error) {
		acc, err := p.Parse(s)
		if err != nil {
			return acc, err
		}
		for {
			v, err := p.Parse(s)
			if err != nil {
				if IsWeak(err) {
					return acc, nil
				}
				var zero T
				return zero, err
			}
			acc = combine(acc, v)
		}
	})
}

// Many1String is Many1 for character parsers, collecting into a string.
func Many1String(p *Parser[byte]) *Parser[string] {
	return Many1(Lift(p), func(acc, next string) string { return acc + next })
}

// SkipMany1 applies p at least once, discarding the results.
func SkipMany1[T any](p *Parser[T]) *Parser[Unit] {
	rest := SkipMany(p)
	return New(p.name, func(s *stream.Stream) (Unit, error) {
		if _, err := p.Parse(s); err != nil {
			return Unit{}, err
		}
		return rest.Parse(s)
	})
}
