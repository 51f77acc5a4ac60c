package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	xebnf "golang.org/x/exp/ebnf"

	"github.com/yaklabco/parsec/internal/logging"
	"github.com/yaklabco/parsec/pkg/config"
	"github.com/yaklabco/parsec/pkg/ebnf"
	"github.com/yaklabco/parsec/pkg/grammars"
	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

var (
	// ErrUnknownGrammar is returned for a grammar name with no built-in grammar.
	ErrUnknownGrammar = errors.New("unknown grammar")

	// ErrStartRequired is returned when an EBNF grammar has no single root
	// and no start production was given.
	ErrStartRequired = errors.New("start production required")
)

// target is what the parse command runs: a built-in grammar or a compiled
// grammar file.
type target struct {
	name string
	run  func(s *stream.Stream, requireEOF bool) (any, error)
}

func resolveTarget(ctx context.Context, cfg *config.Config) (target, error) {
	if !cfg.UsesEBNF() {
		g, ok := grammars.Lookup(cfg.Grammar)
		if !ok {
			return target{}, fmt.Errorf("%w %q; must be one of: %s",
				ErrUnknownGrammar, cfg.Grammar, strings.Join(grammars.Names(), ", "))
		}
		return target{name: g.Name, run: g.Run}, nil
	}

	grammar, err := ebnf.Load(ctx, cfg.EBNF.Path)
	if err != nil {
		return target{}, err
	}

	start, err := startProduction(grammar, cfg.EBNF.Start)
	if err != nil {
		return target{}, err
	}

	var opts []ebnf.Option
	if config.Bool(cfg.EBNF.SkipBlanks) {
		opts = append(opts, ebnf.WithSkipBlanks())
	}
	if cfg.Trace {
		opts = append(opts, ebnf.WithTrace())
	}

	p, err := ebnf.Compile(grammar, start, opts...)
	if err != nil {
		return target{}, fmt.Errorf("compile %s: %w", cfg.EBNF.Path, err)
	}

	logging.Default().Debug("compiled grammar",
		logging.FieldPath, cfg.EBNF.Path,
		logging.FieldStart, start,
		logging.FieldProductions, len(grammar),
	)

	complete := parsec.Complete(p)
	return target{
		name: start,
		run: func(s *stream.Stream, requireEOF bool) (any, error) {
			if requireEOF {
				return parsec.Run(complete, s)
			}
			return parsec.Run(p, s)
		},
	}, nil
}

// startProduction returns start, or the grammar's only root when start is empty.
func startProduction(grammar xebnf.Grammar, start string) (string, error) {
	if start != "" {
		return start, nil
	}

	roots := ebnf.Roots(grammar)
	if len(roots) == 1 {
		return roots[0], nil
	}

	return "", fmt.Errorf("%w: grammar has %d candidate productions (%s); use --start",
		ErrStartRequired, len(roots), strings.Join(roots, ", "))
}
