package stream_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parsec/pkg/stream"
)

func TestPosition_Advance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    stream.Position
		char     byte
		expected stream.Position
	}{
		{"plain character", stream.Position{Offset: 0, Line: 1, Column: 1}, 'a', stream.Position{Offset: 1, Line: 1, Column: 2}},
		{"tab at column 1", stream.Position{Offset: 0, Line: 1, Column: 1}, '\t', stream.Position{Offset: 1, Line: 1, Column: 9}},
		{"tab at column 3", stream.Position{Offset: 2, Line: 1, Column: 3}, '\t', stream.Position{Offset: 3, Line: 1, Column: 9}},
		{"tab at column 8", stream.Position{Offset: 7, Line: 1, Column: 8}, '\t', stream.Position{Offset: 8, Line: 1, Column: 9}},
		{"tab at column 9", stream.Position{Offset: 8, Line: 1, Column: 9}, '\t', stream.Position{Offset: 9, Line: 1, Column: 17}},
		{"newline", stream.Position{Offset: 4, Line: 1, Column: 5}, '\n', stream.Position{Offset: 5, Line: 2, Column: 1}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := testCase.start.Advance(testCase.char, stream.DefaultTabWidth)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestPosition_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1:1", stream.StartPosition().String())
	assert.Equal(t, "3:14", stream.Position{Offset: 40, Line: 3, Column: 14}.String())
	assert.Equal(t, "-", stream.Position{}.String())
}

func TestStream_PeekDoesNotAdvance(t *testing.T) {
	t.Parallel()

	s := stream.NewString("ab")

	c, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)

	c, ok = s.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)
	assert.Equal(t, stream.StartPosition(), s.Position())
}

func TestStream_ConsumeTracksPosition(t *testing.T) {
	t.Parallel()

	s := stream.NewString("a\tb\nc")
	for range 5 {
		_, ok := s.Peek()
		require.True(t, ok)
		s.Consume()
	}

	assert.Equal(t, stream.Position{Offset: 5, Line: 2, Column: 2}, s.Position())
	assert.Equal(t, byte('c'), s.Last())
	assert.Equal(t, int64(5), s.Tell())

	_, ok := s.Peek()
	assert.False(t, ok)
	assert.True(t, s.EOF())
	assert.NoError(t, s.Err())
}

func TestStream_ConsumeWithoutPeekPanics(t *testing.T) {
	t.Parallel()

	s := stream.NewString("a")
	assert.Panics(t, func() { s.Consume() })
}

func TestStream_LookaheadDoesNotArmConsume(t *testing.T) {
	t.Parallel()

	s := stream.NewString("ab")
	c, ok := s.Lookahead()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)
	assert.Panics(t, func() { s.Consume() })

	_, ok = s.Peek()
	require.True(t, ok)
	_, ok = s.Lookahead()
	require.True(t, ok)
	assert.Panics(t, func() { s.Consume() })
	assert.Equal(t, stream.StartPosition(), s.Position())
}

func TestStream_ConsumeReportsFailedRead(t *testing.T) {
	t.Parallel()

	s := stream.New(brokenNext{})
	c, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('a'), c)

	_, ok = s.Consume()
	assert.False(t, ok)
	assert.Equal(t, stream.StartPosition(), s.Position())
	assert.ErrorIs(t, s.Err(), errDeviceGone)
	assert.True(t, s.EOF())
}

func TestStream_WithTabWidth(t *testing.T) {
	t.Parallel()

	s := stream.NewString("\t", stream.WithTabWidth(4))
	_, ok := s.Peek()
	require.True(t, ok)
	s.Consume()

	assert.Equal(t, 5, s.Position().Column)
	assert.Equal(t, 4, s.TabWidth())
}

func TestStream_FailFlag(t *testing.T) {
	t.Parallel()

	s := stream.NewString("")
	assert.False(t, s.Failed())

	s.MarkFail()
	assert.True(t, s.Failed())

	s.ClearFail()
	assert.False(t, s.Failed())
}

func TestStream_SaveRestore(t *testing.T) {
	t.Parallel()

	s := stream.NewString("abc\ndef", stream.WithName("input.txt"))
	consume(t, s, 2)

	s.Save()
	require.Equal(t, 1, s.Depth())
	consume(t, s, 3)
	require.Equal(t, 2, s.Position().Line)

	require.NoError(t, s.Restore())
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, stream.Position{Offset: 2, Line: 1, Column: 3}, s.Position())
	assert.Equal(t, byte('b'), s.Last())
	assert.Equal(t, "input.txt", s.Name())

	c, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('c'), c)
}

func TestStream_RestoreWithoutCheckpoint(t *testing.T) {
	t.Parallel()

	s := stream.NewString("abc")
	assert.ErrorIs(t, s.Restore(), stream.ErrNoCheckpoint)
}

func TestStream_Discard(t *testing.T) {
	t.Parallel()

	s := stream.NewString("abc")
	s.Save()
	consume(t, s, 1)
	s.Discard()

	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, int64(1), s.Tell())
}

func TestStream_NonSeekableReader(t *testing.T) {
	t.Parallel()

	s := stream.New(stream.FromReader(onlyReader{strings.NewReader("xyz")}))
	assert.False(t, s.CanSeek())

	s.Save()
	consume(t, s, 2)

	err := s.Restore()
	require.ErrorIs(t, err, stream.ErrNotSeekable)
	assert.Equal(t, int64(2), s.Tell())
	assert.Equal(t, 0, s.Depth())
}

func TestStream_ReadSeekerRewinds(t *testing.T) {
	t.Parallel()

	reader := bytes.NewReader([]byte("0123456789"))
	_, err := reader.Seek(3, io.SeekStart)
	require.NoError(t, err)

	s := stream.New(stream.FromReadSeeker(reader))
	require.True(t, s.CanSeek())

	s.Save()
	consume(t, s, 4)
	require.NoError(t, s.Restore())

	c, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('3'), c)
	assert.Equal(t, int64(0), s.Tell())
}

func TestOpen_ChoosesSource(t *testing.T) {
	t.Parallel()

	seekable := stream.New(stream.Open(strings.NewReader("abc")))
	assert.True(t, seekable.CanSeek())

	plain := stream.New(stream.Open(onlyReader{strings.NewReader("abc")}))
	assert.False(t, plain.CanSeek())
}

func TestBytesSource_SeekRange(t *testing.T) {
	t.Parallel()

	src := stream.FromString("abc")
	require.NoError(t, src.Seek(3))
	assert.ErrorIs(t, src.Seek(4), stream.ErrSeekRange)
	assert.ErrorIs(t, src.Seek(-1), stream.ErrSeekRange)
}

var errDeviceGone = errors.New("device gone")

// brokenNext peeks a character it then fails to deliver.
type brokenNext struct{}

func (brokenNext) Peek() (byte, error) { return 'a', nil }
func (brokenNext) Next() (byte, error) { return 0, errDeviceGone }

// onlyReader hides every method but Read.
type onlyReader struct {
	r io.Reader
}

func (o onlyReader) Read(p []byte) (int, error) {
	return o.r.Read(p)
}

func consume(t *testing.T, s *stream.Stream, n int) {
	t.Helper()

	for range n {
		_, ok := s.Peek()
		require.True(t, ok)
		s.Consume()
	}
}
