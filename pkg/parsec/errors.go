package parsec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/parsec/pkg/stream"
)

// Kind classifies a parse failure.
type Kind uint8

const (
	// Weak means the parser failed without consuming input. Sibling
	// alternatives and repetitions recover from it.
	Weak Kind = iota + 1

	// Fatal means the parser consumed input before failing. Only Try can
	// turn it back into a Weak failure.
	Fatal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Weak:
		return "weak"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var (
	// ErrNoMatch matches every weak failure with errors.Is.
	ErrNoMatch = errors.New("no match")

	// ErrSyntax matches every fatal failure with errors.Is.
	ErrSyntax = errors.New("syntax error")

	// ErrStreamFailed is the cause reported when Run is given a stream
	// whose fail flag is already set.
	ErrStreamFailed = errors.New("stream is in a failed state")

	// ErrRead is the cause reported by Run when the source failed with an
	// error other than io.EOF.
	ErrRead = errors.New("read input")
)

// Error is the failure value every parser returns.
type Error struct {
	// Kind is Weak or Fatal.
	Kind Kind

	// Pos is where the failure was classified. For a fatal failure it is the
	// position after the partial consumption.
	Pos stream.Position

	// Source is the stream name, if any.
	Source string

	// Expected lists what would have been accepted at Pos.
	Expected []string

	// Found is the character at Pos; meaningless when AtEOF is set.
	Found byte
	AtEOF bool

	// Cause is an underlying error, e.g. from a Chain function.
	Cause error

	// Backtracked is the fatal failure a Try rewound. Unwrap does not
	// return it: a rewound failure must not match ErrSyntax.
	Backtracked *Error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var builder strings.Builder

	if e.Source != "" {
		builder.WriteString(e.Source)
		builder.WriteByte(':')
	}
	builder.WriteString(e.Pos.String())
	builder.WriteString(": ")

	if e.Kind == Fatal {
		builder.WriteString("syntax error: ")
	}
	builder.WriteString(e.Message())

	return builder.String()
}

// Message describes the failure without its location or kind.
func (e *Error) Message() string {
	if len(e.Expected) == 0 && e.Cause != nil {
		return e.Cause.Error()
	}

	var builder strings.Builder
	if len(e.Expected) > 0 {
		builder.WriteString("expected ")
		builder.WriteString(joinExpected(e.Expected))
		builder.WriteString(", ")
	}
	builder.WriteString("found ")
	builder.WriteString(e.FoundString())

	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}

	return builder.String()
}

// FoundString describes the offending character.
func (e *Error) FoundString() string {
	if e.AtEOF {
		return "end of input"
	}
	return quote(e.Found)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches ErrNoMatch for weak failures and ErrSyntax for fatal ones.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNoMatch:
		return e.Kind == Weak
	case ErrSyntax:
		return e.Kind == Fatal
	default:
		return false
	}
}

// escalate returns a fatal copy of a weak failure, positioned at pos.
func (e *Error) escalate(pos stream.Position) *Error {
	fatal := *e
	fatal.Kind = Fatal
	fatal.Pos = pos
	return &fatal
}

// KindOf returns the kind of the outermost *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return 0
}

// IsWeak reports whether err is a weak failure.
func IsWeak(err error) bool {
	return KindOf(err) == Weak
}

// IsFatal reports whether err is a fatal failure.
func IsFatal(err error) bool {
	return KindOf(err) == Fatal
}

// Expected returns the expectation list of err, or nil.
func Expected(err error) []string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Expected
	}
	return nil
}

// noMatch builds a weak failure at the current position of s.
func noMatch(s *stream.Stream, expected ...string) *Error {
	perr := &Error{
		Kind:     Weak,
		Pos:      s.Position(),
		Source:   s.Name(),
		Expected: expected,
	}
	if c, ok := s.Lookahead(); ok {
		perr.Found = c
	} else {
		perr.AtEOF = true
	}
	return perr
}

// classify is the consumption check every invocation goes through: a
// failure is weak only if nothing was consumed since start.
func classify(s *stream.Stream, start int64, err error) error {
	consumed := s.Tell() != start

	var perr *Error
	if !errors.As(err, &perr) {
		wrapped := noMatch(s)
		wrapped.Cause = err
		if consumed {
			wrapped.Kind = Fatal
		}
		return wrapped
	}

	if perr.Kind == Weak && consumed {
		return perr.escalate(s.Position())
	}

	return err
}

func joinExpected(items []string) string {
	seen := make(map[string]bool, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		unique = append(unique, item)
	}

	switch len(unique) {
	case 0:
		return "nothing"
	case 1:
		return unique[0]
	default:
		return strings.Join(unique[:len(unique)-1], ", ") + " or " + unique[len(unique)-1]
	}
}

// quote renders a single code unit; bytes outside ASCII are shown in hex.
func quote(c byte) string {
	if c >= 0x80 {
		return fmt.Sprintf("'\\x%02x'", c)
	}
	return fmt.Sprintf("%q", rune(c))
}
