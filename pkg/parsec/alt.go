package parsec

import (
	"strings"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Or tries each alternative in order.
//
// The first success wins. A weak failure moves on to the next alternative;
// a fatal failure is returned at once and later alternatives are never
// tried. When every alternative fails weakly the expectations are merged.
// Callers keep grammars LL(1) by ordering alternatives so that each one
// commits on its first character, and use Try where they cannot.
func Or[T any](alts ...*Parser[T]) *Parser[T] {
	if len(alts) == 0 {
		panic("parsec: Or needs at least one alternative")
	}

	names := make([]string, len(alts))
	for i, alt := range alts {
		names[i] = alt.name
	}

	return New(strings.Join(names, " | "), func(s *stream.Stream) (T, error) {
		var zero T
		var expected []string

		for _, alt := range alts {
			v, err := alt.Parse(s)
			if err == nil {
				return v, nil
			}
			if !IsWeak(err) {
				return zero, err
			}
			expected = append(expected, Expected(err)...)
		}

		return zero, noMatch(s, expected...)
	})
}
