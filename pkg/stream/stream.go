// Package stream provides the position-tracking character stream that parsec
// parsers read from.
//
// A Stream wraps a borrowed Source and adds the state the failure protocol
// needs: a fail flag, an eof flag, the last consumed character, the current
// Position and a stack of checkpoints for backtracking. Streams are not safe
// for concurrent use; give every parse session its own Stream.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/v2/stacks/arraystack"
)

var (
	// ErrNotSeekable is returned when a rewind is requested on a source
	// that cannot seek.
	ErrNotSeekable = errors.New("stream: source cannot seek")

	// ErrNoCheckpoint is returned by Restore when no checkpoint was saved.
	ErrNoCheckpoint = errors.New("stream: no checkpoint saved")

	// ErrSeekRange is returned when a seek target lies outside the input.
	ErrSeekRange = errors.New("stream: seek offset out of range")
)

// checkpoint is a saved cursor.
type checkpoint struct {
	pos  Position
	last byte
}

// Option configures a Stream.
type Option func(*Stream)

// WithTabWidth sets the tab stop interval used for column tracking.
func WithTabWidth(width int) Option {
	return func(s *Stream) {
		if width > 0 {
			s.tabWidth = width
		}
	}
}

// WithLogger attaches a logger used by tracing parsers.
func WithLogger(logger *log.Logger) Option {
	return func(s *Stream) {
		s.logger = logger
	}
}

// WithName sets the input name shown in diagnostics, usually a file path.
func WithName(name string) Option {
	return func(s *Stream) {
		s.name = name
	}
}

// Stream is a positioned view over a Source.
type Stream struct {
	src      Source
	seeker   Seeker
	name     string
	tabWidth int
	logger   *log.Logger

	pos    Position
	last   byte
	fail   bool
	eof    bool
	peeked bool
	err    error

	checkpoints *arraystack.Stack[checkpoint]
}

// New wraps src. The stream never closes src.
func New(src Source, opts ...Option) *Stream {
	s := &Stream{
		src:         src,
		tabWidth:    DefaultTabWidth,
		pos:         StartPosition(),
		checkpoints: arraystack.New[checkpoint](),
	}
	if seeker, ok := src.(Seeker); ok {
		s.seeker = seeker
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewString returns a seekable stream over input.
func NewString(input string, opts ...Option) *Stream {
	return New(FromString(input), opts...)
}

// NewBytes returns a seekable stream over input.
func NewBytes(input []byte, opts ...Option) *Stream {
	return New(FromBytes(input), opts...)
}

// Peek returns the next character without consuming it.
// It reports false at the end of input or on a read error, and sets the eof flag.
func (s *Stream) Peek() (byte, bool) {
	c, err := s.src.Peek()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		s.eof = true
		s.peeked = false
		return 0, false
	}
	s.peeked = true
	return c, true
}

// Lookahead returns the next character like Peek but leaves Consume
// unarmed, cancelling any pending Peek. Failure diagnostics use it to
// describe the offending character.
func (s *Stream) Lookahead() (byte, bool) {
	c, ok := s.Peek()
	s.peeked = false
	return c, ok
}

// Consume takes the character returned by the preceding successful Peek and
// advances the position. Calling it without such a Peek is a programming error.
// It reports false, without advancing, when the source fails to deliver the
// peeked character; Err then holds the cause.
func (s *Stream) Consume() (byte, bool) {
	if !s.peeked {
		panic("stream: Consume called without a successful Peek")
	}
	s.peeked = false

	c, err := s.src.Next()
	if err != nil {
		s.err = fmt.Errorf("read after successful peek: %w", err)
		s.eof = true
		return 0, false
	}

	s.last = c
	s.pos = s.pos.Advance(c, s.tabWidth)
	return c, true
}

// MarkFail sets the fail flag.
func (s *Stream) MarkFail() { s.fail = true }

// ClearFail clears the fail flag.
func (s *Stream) ClearFail() { s.fail = false }

// Failed reports the fail flag.
func (s *Stream) Failed() bool { return s.fail }

// EOF reports whether a peek has hit the end of input.
func (s *Stream) EOF() bool { return s.eof }

// Err returns the first read error other than io.EOF, if any.
func (s *Stream) Err() error { return s.err }

// Tell returns the number of characters consumed so far.
func (s *Stream) Tell() int64 { return s.pos.Offset }

// Position returns the current cursor.
func (s *Stream) Position() Position { return s.pos }

// Last returns the most recently consumed character, or 0 before the first.
func (s *Stream) Last() byte { return s.last }

// Name returns the input name given with WithName.
func (s *Stream) Name() string { return s.name }

// TabWidth returns the tab stop interval.
func (s *Stream) TabWidth() int { return s.tabWidth }

// Logger returns the attached logger, or nil.
func (s *Stream) Logger() *log.Logger { return s.logger }

// CanSeek reports whether the underlying source supports rewinding.
func (s *Stream) CanSeek() bool { return s.seeker != nil }

// Reset rewinds the stream to pos, which must have been recorded from this
// stream. The fail flag is left untouched.
func (s *Stream) Reset(pos Position) error {
	if s.seeker == nil {
		return ErrNotSeekable
	}
	if err := s.seeker.Seek(pos.Offset); err != nil {
		return fmt.Errorf("reset to %s: %w", pos, err)
	}

	s.pos = pos
	s.eof = false
	s.peeked = false
	return nil
}

// Save pushes the current cursor onto the checkpoint stack.
func (s *Stream) Save() {
	s.checkpoints.Push(checkpoint{pos: s.pos, last: s.last})
}

// Restore pops the most recent checkpoint and rewinds to it.
// The checkpoint is popped even when the rewind fails.
func (s *Stream) Restore() error {
	cp, ok := s.checkpoints.Pop()
	if !ok {
		return ErrNoCheckpoint
	}
	if err := s.Reset(cp.pos); err != nil {
		return err
	}
	s.last = cp.last
	return nil
}

// Discard pops the most recent checkpoint without rewinding.
func (s *Stream) Discard() {
	s.checkpoints.Pop()
}

// Depth returns the number of saved checkpoints.
func (s *Stream) Depth() int {
	return s.checkpoints.Size()
}
