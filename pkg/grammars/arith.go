package grammars

import (
	"errors"
	"fmt"
	"math"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

// ErrDivisionByZero is returned when an expression divides by zero.
var ErrDivisionByZero = errors.New("division by zero")

type binaryOp func(a, b int64) (int64, error)

// Arith evaluates integer expressions over + - * / with the usual
// precedence, left associativity, unary minus and parentheses:
//
//	expr   = term { ("+" | "-") term } .
//	term   = factor { ("*" | "/") factor } .
//	factor = number | "(" expr ")" | "-" factor .
//
// Blanks may appear between tokens. Division truncates toward zero.
func Arith() *parsec.Parser[int64] {
	expr := parsec.Ref[int64]("expression")
	factor := parsec.Ref[int64]("factor")

	lparen := parsec.Lexeme(parsec.Char('('))
	rparen := parsec.Lexeme(parsec.Char(')'))

	negate := parsec.Chain(
		parsec.Then(parsec.Lexeme(parsec.Char('-')), factor),
		func(_ *stream.Stream, n int64) (int64, error) {
			if n == math.MinInt64 {
				return 0, fmt.Errorf("%w: -(%d)", ErrOverflow, n)
			}
			return -n, nil
		},
	)

	factor.Define(parsec.Label(parsec.Or(
		parsec.Lexeme(Natural()),
		parsec.Between(lparen, expr, rparen),
		negate,
	), "operand"))

	term := chainLeft(factor, parsec.Or(
		operator('*', multiply),
		operator('/', divide),
	))

	expr.Define(chainLeft(term, parsec.Or(
		operator('+', add),
		operator('-', subtract),
	)))

	return parsec.Then(parsec.Blanks(), expr)
}

func operator(symbol byte, op binaryOp) *parsec.Parser[binaryOp] {
	return parsec.Value(parsec.Lexeme(parsec.Char(symbol)), op)
}

func add(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}

func subtract(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
	}
	return a - b, nil
}

func multiply(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return product, nil
}

func divide(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == math.MinInt64 && b == -1 {
		return 0, fmt.Errorf("%w: %d / %d", ErrOverflow, a, b)
	}
	return a / b, nil
}

// chainLeft parses operand { op operand } and folds from the left. An
// operator must be followed by an operand.
func chainLeft(operand *parsec.Parser[int64], op *parsec.Parser[binaryOp]) *parsec.Parser[int64] {
	return parsec.Chain(operand, func(s *stream.Stream, acc int64) (int64, error) {
		for {
			apply, err := op.Parse(s)
			if err != nil {
				if parsec.IsWeak(err) {
					return acc, nil
				}
				return 0, err
			}

			rhs, err := operand.Parse(s)
			if err != nil {
				return 0, err
			}

			acc, err = apply(acc, rhs)
			if err != nil {
				return 0, err
			}
		}
	})
}
