package grammars

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

// ErrOverflow is returned for integers outside the int64 range.
var ErrOverflow = errors.New("integer out of range")

// Identifier matches a letter or underscore followed by letters, digits and
// underscores.
func Identifier() *parsec.Parser[string] {
	head := parsec.Or(parsec.Letter(), parsec.Char('_'))
	tail := parsec.ManyString(parsec.Or(parsec.AlphaNum(), parsec.Char('_')))

	return parsec.Label(parsec.Cat(head, tail), "identifier")
}

// Natural matches a run of decimal digits.
func Natural() *parsec.Parser[int64] {
	return parsec.Label(parsec.Chain(parsec.Many1String(parsec.Digit()), toInt), "number")
}

// Integer matches an optionally signed decimal integer. The sign must be
// directly followed by a digit.
func Integer() *parsec.Parser[int64] {
	sign := parsec.Optional(parsec.Lift(parsec.OneOf("+-")), "")
	literal := parsec.Cat(sign, parsec.Many1String(parsec.Digit()))

	return parsec.Label(parsec.Chain(literal, toInt), "integer")
}

func toInt(_ *stream.Stream, digits string) (int64, error) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrOverflow, digits)
	}
	return n, nil
}
