package parsec

import (
	"strconv"
	"strings"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Satisfy consumes one character for which pred returns true.
// Every primitive is built on it, so primitive failures are always weak.
func Satisfy(name string, pred func(c byte) bool) *Parser[byte] {
	return New(name, func(s *stream.Stream) (byte, error) {
		c, ok := s.Peek()
		if !ok || !pred(c) {
			return 0, noMatch(s, name)
		}
		if _, ok := s.Consume(); !ok {
			perr := noMatch(s, name)
			perr.Cause = s.Err()
			return 0, perr
		}
		return c, nil
	})
}

// Char matches c.
func Char(c byte) *Parser[byte] {
	return Satisfy(quote(c), func(got byte) bool { return got == c })
}

// Any matches any character.
func Any() *Parser[byte] {
	return Satisfy("any character", func(byte) bool { return true })
}

// OneOf matches any character in set.
func OneOf(set string) *Parser[byte] {
	return Satisfy("one of "+strconv.Quote(set), func(c byte) bool {
		return strings.IndexByte(set, c) >= 0
	})
}

// NoneOf matches any character not in set.
func NoneOf(set string) *Parser[byte] {
	return Satisfy("none of "+strconv.Quote(set), func(c byte) bool {
		return strings.IndexByte(set, c) < 0
	})
}

// Range matches characters in [lo, hi].
func Range(lo, hi byte) *Parser[byte] {
	return Satisfy(quote(lo)+"…"+quote(hi), func(c byte) bool {
		return c >= lo && c <= hi
	})
}

// Letter matches an ASCII letter.
func Letter() *Parser[byte] {
	return Satisfy("letter", isLetter)
}

// Digit matches an ASCII digit.
func Digit() *Parser[byte] {
	return Satisfy("digit", isDigit)
}

// AlphaNum matches an ASCII letter or digit.
func AlphaNum() *Parser[byte] {
	return Satisfy("letter or digit", func(c byte) bool {
		return isLetter(c) || isDigit(c)
	})
}

// Blank matches a space or a tab.
func Blank() *Parser[byte] {
	return Satisfy("blank", func(c byte) bool {
		return c == ' ' || c == '\t'
	})
}

// Space matches ASCII white space.
func Space() *Parser[byte] {
	return Satisfy("white space", func(c byte) bool {
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return true
		default:
			return false
		}
	})
}

// EOF succeeds, without consuming, when no input remains.
func EOF() *Parser[Unit] {
	return New("end of input", func(s *stream.Stream) (Unit, error) {
		if _, ok := s.Peek(); ok {
			return Unit{}, noMatch(s, "end of input")
		}
		return Unit{}, nil
	})
}

// String matches the literal lit character by character. A mismatch on the
// first character is a weak failure, a later mismatch a fatal one.
func String(lit string) *Parser[string] {
	name := strconv.Quote(lit)
	return New(name, func(s *stream.Stream) (string, error) {
		for i := range len(lit) {
			c, ok := s.Peek()
			if !ok || c != lit[i] {
				return "", noMatch(s, name)
			}
			if _, ok := s.Consume(); !ok {
				perr := noMatch(s, name)
				perr.Cause = s.Err()
				return "", perr
			}
		}
		return lit, nil
	})
}

// SkipChar matches c and discards it.
func SkipChar(c byte) *Parser[Unit] {
	return Skip(Char(c))
}

// SkipString matches lit and discards it.
func SkipString(lit string) *Parser[Unit] {
	return Skip(String(lit))
}

// Blanks skips any number of spaces and tabs, including none.
func Blanks() *Parser[Unit] {
	return SkipMany(Blank())
}

// Spaces skips any amount of white space, including none.
func Spaces() *Parser[Unit] {
	return SkipMany(Space())
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
