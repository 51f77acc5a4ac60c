// Package ebnf turns grammars written in the EBNF dialect of
// golang.org/x/exp/ebnf into parsec parsers.
//
// Every production becomes a parser producing the text it matched. The
// mapping is direct: a token is a literal, a range a character class, a
// sequence a concatenation and a repetition a Many. Alternatives and options
// are compiled with Try so that any alternative may share a prefix with the
// next; parsing therefore needs a seekable stream whenever an alternative
// fails after consuming input.
//
// Productions whose names start with a lowercase letter are lexical, as in
// golang.org/x/exp/ebnf. With WithSkipBlanks, the other productions skip
// white space between their tokens.
package ebnf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	xebnf "golang.org/x/exp/ebnf"

	"github.com/yaklabco/parsec/pkg/fsutil"
	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

var (
	// ErrNoStart is returned when the start production is missing.
	ErrNoStart = errors.New("ebnf: start production not found")

	// ErrUnsupported is returned for expressions that cannot be compiled,
	// such as ranges over multi-byte characters.
	ErrUnsupported = errors.New("ebnf: unsupported expression")

	// errEmptyMatch stops a repetition whose body matched nothing.
	errEmptyMatch = errors.New("repetition matched the empty string")
)

// Option configures Compile.
type Option func(*compiler)

// WithSkipBlanks makes non-lexical productions skip white space after every
// token, range and lexical production they reference.
func WithSkipBlanks() Option {
	return func(c *compiler) {
		c.skipBlanks = true
	}
}

// WithTrace wraps every production in parsec.Trace.
func WithTrace() Option {
	return func(c *compiler) {
		c.trace = true
	}
}

// Load reads and parses the grammar file at path.
func Load(ctx context.Context, path string) (xebnf.Grammar, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}

	return Parse(path, bytes.NewReader(content))
}

// Parse reads a grammar from r; name is used in error positions.
func Parse(name string, r io.Reader) (xebnf.Grammar, error) {
	grammar, err := xebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Verify checks that grammar is well formed from start: every referenced
// production exists and every production is reachable.
func Verify(grammar xebnf.Grammar, start string) error {
	if _, ok := grammar[start]; !ok {
		return fmt.Errorf("%w: %q", ErrNoStart, start)
	}
	if err := xebnf.Verify(grammar, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Productions returns the production names of grammar in sorted order.
func Productions(grammar xebnf.Grammar) []string {
	return slices.Sorted(maps.Keys(grammar))
}

// Roots returns, in sorted order, the productions no other production
// references. A grammar that verifies from some start has that start as
// its only root unless the start is itself referenced.
func Roots(grammar xebnf.Grammar) []string {
	referenced := make(map[string]bool, len(grammar))
	for name, prod := range grammar {
		collectNames(prod.Expr, func(ref string) {
			if ref != name {
				referenced[ref] = true
			}
		})
	}

	var roots []string
	for _, name := range Productions(grammar) {
		if !referenced[name] {
			roots = append(roots, name)
		}
	}
	return roots
}

func collectNames(expr xebnf.Expression, visit func(string)) {
	switch x := expr.(type) {
	case *xebnf.Name:
		visit(x.String)
	case xebnf.Sequence:
		for _, e := range x {
			collectNames(e, visit)
		}
	case xebnf.Alternative:
		for _, e := range x {
			collectNames(e, visit)
		}
	case *xebnf.Group:
		collectNames(x.Body, visit)
	case *xebnf.Option:
		collectNames(x.Body, visit)
	case *xebnf.Repetition:
		collectNames(x.Body, visit)
	}
}

// IsLexical reports whether the production name denotes a lexical production.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

type compiler struct {
	grammar    xebnf.Grammar
	refs       map[string]*parsec.Parser[string]
	skipBlanks bool
	trace      bool
}

// Compile verifies grammar and returns a parser for the start production.
func Compile(grammar xebnf.Grammar, start string, opts ...Option) (*parsec.Parser[string], error) {
	if err := Verify(grammar, start); err != nil {
		return nil, err
	}

	c := &compiler{
		grammar: grammar,
		refs:    make(map[string]*parsec.Parser[string], len(grammar)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for name := range grammar {
		c.refs[name] = parsec.Ref[string](name)
	}

	for _, name := range Productions(grammar) {
		prod := grammar[name]

		body, err := c.expr(prod.Expr, IsLexical(name))
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}

		body = parsec.Label(body, name)
		if c.trace {
			body = parsec.Trace(name, body)
		}
		c.refs[name].Define(body)
	}

	root := c.refs[start]
	if c.skipBlanks && !IsLexical(start) {
		root = parsec.Then(parsec.Spaces(), root)
	}
	return root, nil
}

func (c *compiler) expr(expr xebnf.Expression, lexical bool) (*parsec.Parser[string], error) {
	switch x := expr.(type) {
	case nil:
		return parsec.Pure(""), nil

	case *xebnf.Name:
		ref, ok := c.refs[x.String]
		if !ok {
			return nil, fmt.Errorf("%s: missing production %s", x.Pos(), x.String)
		}
		if !lexical && IsLexical(x.String) {
			return c.lexeme(ref, lexical), nil
		}
		return ref, nil

	case *xebnf.Token:
		return c.lexeme(parsec.String(x.String), lexical), nil

	case *xebnf.Range:
		lo, hi, err := rangeBounds(x)
		if err != nil {
			return nil, err
		}
		return c.lexeme(parsec.Lift(parsec.Range(lo, hi)), lexical), nil

	case xebnf.Sequence:
		items, err := c.exprs(x, lexical)
		if err != nil {
			return nil, err
		}
		return parsec.Concat(items...), nil

	case xebnf.Alternative:
		alts, err := c.exprs(x, lexical)
		if err != nil {
			return nil, err
		}
		for i := range len(alts) - 1 {
			alts[i] = parsec.Try(alts[i])
		}
		return parsec.Or(alts...), nil

	case *xebnf.Group:
		return c.expr(x.Body, lexical)

	case *xebnf.Option:
		body, err := c.expr(x.Body, lexical)
		if err != nil {
			return nil, err
		}
		return parsec.Optional(parsec.Try(body), ""), nil

	case *xebnf.Repetition:
		body, err := c.expr(x.Body, lexical)
		if err != nil {
			return nil, err
		}
		return parsec.Map(parsec.Many(parsec.Try(progress(body))), func(parts []string) string {
			return strings.Join(parts, "")
		}), nil

	case *xebnf.Bad:
		return nil, fmt.Errorf("%s: %s", x.Pos(), x.Error)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, expr)
	}
}

func (c *compiler) exprs(list []xebnf.Expression, lexical bool) ([]*parsec.Parser[string], error) {
	out := make([]*parsec.Parser[string], 0, len(list))
	for _, item := range list {
		p, err := c.expr(item, lexical)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// lexeme skips trailing white space after p inside non-lexical productions.
func (c *compiler) lexeme(p *parsec.Parser[string], lexical bool) *parsec.Parser[string] {
	if !c.skipBlanks || lexical {
		return p
	}
	return parsec.ThenSkip(p, parsec.Spaces())
}

// progress fails weakly when p succeeds without consuming input.
func progress(p *parsec.Parser[string]) *parsec.Parser[string] {
	return parsec.New(p.Name(), func(s *stream.Stream) (string, error) {
		start := s.Tell()
		v, err := p.Parse(s)
		if err != nil {
			return v, err
		}
		if s.Tell() == start {
			return "", errEmptyMatch
		}
		return v, nil
	})
}

func rangeBounds(r *xebnf.Range) (byte, byte, error) {
	if len(r.Begin.String) != 1 || len(r.End.String) != 1 {
		return 0, 0, fmt.Errorf("%w: %s: range %q … %q is not single-byte",
			ErrUnsupported, r.Pos(), r.Begin.String, r.End.String)
	}
	return r.Begin.String[0], r.End.String[0], nil
}
