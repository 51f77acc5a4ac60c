package parsec

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Trace logs every invocation of p at debug level through the stream's
// logger. It is transparent when the stream has no logger or the logger is
// above debug level.
func Trace[T any](name string, p *Parser[T]) *Parser[T] {
	return New(p.name, func(s *stream.Stream) (T, error) {
		logger := s.Logger()
		if logger == nil || logger.GetLevel() > log.DebugLevel {
			return p.Parse(s)
		}

		start := s.Position()
		logger.Debug("enter", "parser", name, "pos", start.String())

		v, err := p.Parse(s)

		consumed := s.Tell() - start.Offset
		switch KindOf(err) {
		case Weak:
			logger.Debug("no match", "parser", name, "pos", s.Position().String(), "expected", Expected(err))
		case Fatal:
			logger.Debug("error", "parser", name, "pos", s.Position().String(), "consumed", consumed, "error", err)
		default:
			logger.Debug("match", "parser", name, "pos", s.Position().String(), "consumed", consumed)
		}

		return v, err
	})
}
