package parsec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

func TestTry_RestoresPosition(t *testing.T) {
	t.Parallel()

	s := stream.NewString("ac")
	_, err := parsec.Try(parsec.Cat(parsec.Char('a'), parsec.Char('b'))).Parse(s)
	require.Error(t, err)

	assert.True(t, parsec.IsWeak(err))
	assert.NotErrorIs(t, err, parsec.ErrSyntax)
	assert.Equal(t, stream.StartPosition(), s.Position())
	assert.True(t, s.Failed())
	assert.Equal(t, 0, s.Depth())

	next, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('a'), next)

	var perr *parsec.Error
	require.ErrorAs(t, err, &perr)
	require.NotNil(t, perr.Backtracked)
	assert.Equal(t, parsec.Fatal, perr.Backtracked.Kind)
	assert.Equal(t, stream.Position{Offset: 1, Line: 1, Column: 2}, perr.Backtracked.Pos)
}

func TestTry_EnablesAlternation(t *testing.T) {
	t.Parallel()

	keyword := parsec.Or(
		parsec.Try(parsec.String("let")),
		parsec.Try(parsec.String("lambda")),
		parsec.String("loop"),
	)

	for _, input := range []string{"let", "lambda", "loop"} {
		got, err := parsec.ParseString(keyword, input)
		require.NoError(t, err, input)
		assert.Equal(t, input, got)
	}

	_, err := parsec.ParseString(keyword, "lx")
	require.Error(t, err)
	assert.True(t, parsec.IsFatal(err))
}

func TestTry_SuccessAndWeakFailurePassThrough(t *testing.T) {
	t.Parallel()

	s := stream.NewString("ab")
	got, err := parsec.Try(parsec.String("ab")).Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
	assert.Equal(t, int64(2), s.Tell())
	assert.Equal(t, 0, s.Depth())

	s = stream.NewString("x")
	_, err = parsec.Try(parsec.Char('a')).Parse(s)
	require.Error(t, err)

	var perr *parsec.Error
	require.ErrorAs(t, err, &perr)
	assert.Nil(t, perr.Backtracked)
	assert.Equal(t, 0, s.Depth())
}

func TestTry_Nested(t *testing.T) {
	t.Parallel()

	inner := parsec.Try(parsec.String("abc"))
	outer := parsec.Try(parsec.Concat(parsec.String("x"), parsec.Or(inner, parsec.String("abd")), parsec.String("!")))

	got, err := parsec.ParseString(outer, "xabd!")
	require.NoError(t, err)
	assert.Equal(t, "xabd!", got)

	s := stream.NewString("xabd?")
	_, err = outer.Parse(s)
	require.Error(t, err)
	assert.True(t, parsec.IsWeak(err))
	assert.Equal(t, int64(0), s.Tell())
	assert.Equal(t, 0, s.Depth())
}

type readerOnly struct {
	r *strings.Reader
}

func (o readerOnly) Read(p []byte) (int, error) { return o.r.Read(p) }

func TestTry_NonSeekableStream(t *testing.T) {
	t.Parallel()

	s := stream.New(stream.Open(readerOnly{strings.NewReader("ac")}))
	require.False(t, s.CanSeek())

	_, err := parsec.Try(parsec.String("ab")).Parse(s)
	require.Error(t, err)

	assert.ErrorIs(t, err, stream.ErrNotSeekable)
	assert.True(t, parsec.IsFatal(err))

	s = stream.New(stream.Open(readerOnly{strings.NewReader("ab")}))
	got, err := parsec.Try(parsec.String("ab")).Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestParseReader_SeeksWhenPossible(t *testing.T) {
	t.Parallel()

	keyword := parsec.Or(parsec.Try(parsec.String("ab")), parsec.String("ac"))

	got, err := parsec.ParseReader(keyword, strings.NewReader("ac"))
	require.NoError(t, err)
	assert.Equal(t, "ac", got)
}
