package parsec

import (
	"github.com/yaklabco/parsec/pkg/stream"
)

// SepBy parses zero or more p separated by sep and collects the results.
//
// No leading p yields an empty slice without consuming. After a separator
// has matched, p is mandatory: a trailing separator is a fatal failure.
func SepBy[T, U any](p *Parser[T], sep *Parser[U]) *Parser[[]T] {
	return New("list of "+p.name, func(s *stream.Stream) ([]T, error) {
		out := make([]T, 0)

		v, err := p.Parse(s)
		if err != nil {
			if IsWeak(err) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)

		for {
			if _, err := sep.Parse(s); err != nil {
				if IsWeak(err) {
					return out, nil
				}
				return nil, err
			}

			v, err := p.Parse(s)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	})
}

// SepByString is SepBy for character parsers, collecting into a string.
func SepByString[U any](p *Parser[byte], sep *Parser[U]) *Parser[string] {
	return Map(SepBy(p, sep), func(cs []byte) string { return string(cs) })
}

// SkipSepBy is SepBy without collecting results.
func SkipSepBy[T, U any](p *Parser[T], sep *Parser[U]) *Parser[Unit] {
	return New("list of "+p.name, func(s *stream.Stream) (Unit, error) {
		if _, err := p.Parse(s); err != nil {
			if IsWeak(err) {
				return Unit{}, nil
			}
			return Unit{}, err
		}
		return Unit{}, sepTail(s, p, sep)
	})
}

// SepBy1 parses one or more p separated by sep and folds the results from
// the left with combine. A weak failure of the first p is a weak failure of
// SepBy1.
func SepBy1[T, U any](p *Parser[T], sep *Parser[U], combine func(acc, next T) T) *Parser[T] {
	return New("list of "+p.name, func(s *stream.Stream) (T, error) {
		var zero T

		acc, err := p.Parse(s)
		if err != nil {
			return zero, err
		}

		for {
			if _, err := sep.Parse(s); err != nil {
				if IsWeak(err) {
					return acc, nil
				}
				return zero, err
			}

			v, err := p.Parse(s)
			if err != nil {
				return zero, err
			}
			acc = combine(acc, v)
		}
	})
}

// SkipSepBy1 parses one or more p separated by sep, discarding the results.
func SkipSepBy1[T, U any](p *Parser[T], sep *Parser[U]) *Parser[Unit] {
	return New("list of "+p.name, func(s *stream.Stream) (Unit, error) {
		if _, err := p.Parse(s); err != nil {
			return Unit{}, err
		}
		return Unit{}, sepTail(s, p, sep)
	})
}

// sepTail consumes (sep p)* after a first element.
func sepTail[T, U any](s *stream.Stream, p *Parser[T], sep *Parser[U]) error {
	for {
		if _, err := sep.Parse(s); err != nil {
			if IsWeak(err) {
				return nil
			}
			return err
		}
		if _, err := p.Parse(s); err != nil {
			return err
		}
	}
}
