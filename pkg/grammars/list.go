package grammars

import (
	"github.com/yaklabco/parsec/pkg/parsec"
)

// IntList matches a bracketed, comma separated list of integers, such as
// "[1, -2, 3]". Blanks are allowed around every element.
func IntList() *parsec.Parser[[]int64] {
	open := parsec.Lexeme(parsec.Char('['))
	closing := parsec.Lexeme(parsec.Char(']'))
	comma := parsec.Lexeme(parsec.Char(','))

	items := parsec.SepBy(parsec.Lexeme(Integer()), comma)

	return parsec.Then(parsec.Blanks(), parsec.Between(open, items, closing))
}
