package parsec

import (
	"errors"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Try runs p and turns a fatal failure into a weak one by rewinding the
// stream to where Try started. The rewound failure is kept in
// Error.Backtracked.
//
// Rewinding needs a seekable stream. On a stream that cannot seek, a fatal
// failure of p is returned as is, joined with stream.ErrNotSeekable, so the
// caller can tell the grammar needs a seekable source. Weak failures pass
// through untouched.
func Try[T any](p *Parser[T]) *Parser[T] {
	return New(p.name, func(s *stream.Stream) (T, error) {
		var zero T

		if !s.CanSeek() {
			v, err := p.Parse(s)
			if IsFatal(err) {
				return zero, errors.Join(err, stream.ErrNotSeekable)
			}
			return v, err
		}

		s.Save()
		v, err := p.Parse(s)
		if !IsFatal(err) {
			s.Discard()
			return v, err
		}

		if rerr := s.Restore(); rerr != nil {
			return zero, errors.Join(err, rerr)
		}

		var fatal *Error
		errors.As(err, &fatal)

		rewound := noMatch(s, p.name)
		rewound.Backtracked = fatal
		return zero, rewound
	})
}
