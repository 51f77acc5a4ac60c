package parsec

import (
	"fmt"
	"sync"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Ref returns a placeholder for a parser that is defined later with Define.
// It lets recursive and mutually recursive rules refer to each other:
//
//	expr := parsec.Ref[int]("expression")
//	factor := parsec.Or(number, parsec.Between(lparen, expr, rparen))
//	expr.Define(sum(factor))
//
// Invoking a Ref before Define panics.
func Ref[T any](name string) *Parser[T] {
	return &Parser[T]{name: name}
}

// Define sets the body of a parser created with Ref. It must be called once,
// before the parser is used by any goroutine.
func (p *Parser[T]) Define(target *Parser[T]) {
	if p.run != nil {
		panic(fmt.Sprintf("parsec: parser %q is already defined", p.name))
	}
	if target == nil {
		panic(fmt.Sprintf("parsec: parser %q defined as nil", p.name))
	}
	p.run = target.Parse
}

// Lazy defers building a parser until its first invocation. build runs at
// most once, even with concurrent callers.
func Lazy[T any](name string, build func() *Parser[T]) *Parser[T] {
	var once sync.Once
	var built *Parser[T]

	return New(name, func(s *stream.Stream) (T, error) {
		once.Do(func() { built = build() })
		return built.Parse(s)
	})
}
