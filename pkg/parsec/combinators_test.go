package parsec_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parsec/pkg/parsec"
	"github.com/yaklabco/parsec/pkg/stream"
)

func digitValue() *parsec.Parser[int] {
	return parsec.Map(parsec.Digit(), func(c byte) int { return int(c - '0') })
}

func add(acc, next int) int { return acc + next }

func TestCat_EscalatesAfterConsumption(t *testing.T) {
	t.Parallel()

	s := stream.NewString("ad")
	_, err := parsec.Cat(parsec.Char('a'), parsec.Char('c')).Parse(s)
	require.Error(t, err)

	assert.True(t, parsec.IsFatal(err))
	assert.ErrorIs(t, err, parsec.ErrSyntax)

	var perr *parsec.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, stream.Position{Offset: 1, Line: 1, Column: 2}, perr.Pos)
	assert.Equal(t, stream.Position{Offset: 1, Line: 1, Column: 2}, s.Position())
	assert.Equal(t, "1:2: syntax error: expected 'c', found 'd'", err.Error())
	assert.True(t, s.Failed())
}

func TestCat_Operands(t *testing.T) {
	t.Parallel()

	letters := parsec.Many1String(parsec.Letter())

	tests := []struct {
		name   string
		parser *parsec.Parser[string]
		input  string
		want   string
	}{
		{"char char", parsec.Cat(parsec.Char('a'), parsec.Char('b')), "ab", "ab"},
		{"char string", parsec.Cat(parsec.Char('$'), letters), "$foo", "$foo"},
		{"string char", parsec.Cat(letters, parsec.Char('!')), "hey!", "hey!"},
		{"string string", parsec.Cat(parsec.String("go"), parsec.String("pher")), "gopher", "gopher"},
		{"lifted", parsec.Lift(parsec.Char('x')), "x", "x"},
		{"concat", parsec.Concat(parsec.String("a"), parsec.Lift(parsec.Digit()), parsec.String("c")), "a1c", "a1c"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := parsec.ParseString(testCase.parser, testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestCat_FirstOperandWeakFailureStaysWeak(t *testing.T) {
	t.Parallel()

	s := stream.NewString("xb")
	_, err := parsec.Cat(parsec.Char('a'), parsec.Char('b')).Parse(s)
	require.Error(t, err)

	assert.True(t, parsec.IsWeak(err))
	assert.Equal(t, int64(0), s.Tell())
}

func TestMany(t *testing.T) {
	t.Parallel()

	t.Run("stops at first mismatch", func(t *testing.T) {
		t.Parallel()

		s := stream.NewString("aaab")
		got, err := parsec.ManyString(parsec.Char('a')).Parse(s)
		require.NoError(t, err)

		assert.Equal(t, "aaa", got)
		assert.Equal(t, int64(3), s.Tell())
		assert.False(t, s.Failed())

		next, ok := s.Peek()
		require.True(t, ok)
		assert.Equal(t, byte('b'), next)
	})

	t.Run("zero matches", func(t *testing.T) {
		t.Parallel()

		s := stream.NewString("b")
		got, err := parsec.Many(parsec.Char('a')).Parse(s)
		require.NoError(t, err)

		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.False(t, s.Failed())
	})

	t.Run("fatal element failure propagates", func(t *testing.T) {
		t.Parallel()

		_, err := parsec.ParseString(parsec.Many(parsec.String("ab")), "ababac")
		require.Error(t, err)
		assert.True(t, parsec.IsFatal(err))
	})

	t.Run("skip many", func(t *testing.T) {
		t.Parallel()

		s := stream.NewString("   x")
		_, err := parsec.SkipMany(parsec.Char(' ')).Parse(s)
		require.NoError(t, err)
		assert.Equal(t, int64(3), s.Tell())
	})
}

func TestMany1(t *testing.T) {
	t.Parallel()

	got, err := parsec.ParseString(parsec.Many1(digitValue(), add), "1234x")
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	word, err := parsec.ParseString(parsec.Many1String(parsec.Letter()), "abc1")
	require.NoError(t, err)
	assert.Equal(t, "abc", word)

	s := stream.NewString("x")
	_, err = parsec.Many1String(parsec.Digit()).Parse(s)
	require.Error(t, err)
	assert.True(t, parsec.IsWeak(err))
	assert.Equal(t, int64(0), s.Tell())

	_, err = parsec.ParseString(parsec.SkipMany1(parsec.Digit()), "")
	require.Error(t, err)
	assert.True(t, parsec.IsWeak(err))
}

func TestSepBy(t *testing.T) {
	t.Parallel()

	list := parsec.SepBy(parsec.Digit(), parsec.Char(','))

	for _, input := range []string{"", "x"} {
		t.Run("empty on "+strconv.Quote(input), func(t *testing.T) {
			t.Parallel()

			s := stream.NewString(input)
			got, err := list.Parse(s)
			require.NoError(t, err)

			assert.Empty(t, got)
			assert.Equal(t, int64(0), s.Tell())
			assert.False(t, s.Failed())
		})
	}

	t.Run("elements", func(t *testing.T) {
		t.Parallel()

		s := stream.NewString("1,2,3;")
		got, err := list.Parse(s)
		require.NoError(t, err)

		assert.Equal(t, []byte("123"), got)
		assert.Equal(t, int64(5), s.Tell())
	})

	t.Run("trailing separator is fatal", func(t *testing.T) {
		t.Parallel()

		s := stream.NewString("1,2,")
		_, err := list.Parse(s)
		require.Error(t, err)

		assert.True(t, parsec.IsFatal(err))
		assert.Equal(t, []string{"digit"}, parsec.Expected(err))
	})

	t.Run("as string", func(t *testing.T) {
		t.Parallel()

		got, err := parsec.ParseString(parsec.SepByString(parsec.Letter(), parsec.Char('-')), "a-b-c")
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()

		s := stream.NewString("1,2 rest")
		_, err := parsec.SkipSepBy(parsec.Digit(), parsec.Char(',')).Parse(s)
		require.NoError(t, err)
		assert.Equal(t, int64(3), s.Tell())

		_, err = parsec.ParseString(parsec.SkipSepBy(parsec.Digit(), parsec.Char(',')), "1,")
		require.Error(t, err)
		assert.True(t, parsec.IsFatal(err))
	})
}

func TestSepBy1(t *testing.T) {
	t.Parallel()

	sum := parsec.SepBy1(digitValue(), parsec.Char('+'), add)

	got, err := parsec.ParseString(sum, "1+2+3")
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	got, err = parsec.ParseString(sum, "7")
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = parsec.ParseString(sum, "")
	require.Error(t, err)
	assert.True(t, parsec.IsWeak(err))

	_, err = parsec.ParseString(sum, "1+")
	require.Error(t, err)
	assert.True(t, parsec.IsFatal(err))

	_, err = parsec.ParseString(parsec.SkipSepBy1(parsec.Digit(), parsec.Char(';')), "a")
	require.Error(t, err)
	assert.True(t, parsec.IsWeak(err))
}

func TestOr(t *testing.T) {
	t.Parallel()

	t.Run("first success wins", func(t *testing.T) {
		t.Parallel()

		got, err := parsec.ParseString(parsec.Or(parsec.Char('a'), parsec.Char('b')), "b")
		require.NoError(t, err)
		assert.Equal(t, byte('b'), got)
	})

	t.Run("merges expectations", func(t *testing.T) {
		t.Parallel()

		s := stream.NewString("c")
		_, err := parsec.Or(parsec.Char('a'), parsec.Char('b')).Parse(s)
		require.Error(t, err)

		assert.True(t, parsec.IsWeak(err))
		assert.Equal(t, "1:1: expected 'a' or 'b', found 'c'", err.Error())
		assert.True(t, s.Failed())
	})

	t.Run("fatal failure stops alternation", func(t *testing.T) {
		t.Parallel()

		tried := false
		second := parsec.New("second", func(*stream.Stream) (string, error) {
			tried = true
			return "second", nil
		})

		_, err := parsec.ParseString(parsec.Or(parsec.String("ab"), second), "ac")
		require.Error(t, err)

		assert.True(t, parsec.IsFatal(err))
		assert.False(t, tried)
	})

	t.Run("empty panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { parsec.Or[int]() })
	})
}

// An alternative that always fails weakly is invisible to the caller.
func TestOr_WeakAlternativeIsTransparent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "a", "ab", "abc", "b", "xyz", "1"}
	q := parsec.Cat(parsec.Char('a'), parsec.Char('b'))
	alt := parsec.Or(parsec.Fail[string]("never"), q)

	for _, input := range inputs {
		t.Run(strconv.Quote(input), func(t *testing.T) {
			t.Parallel()

			s1 := stream.NewString(input)
			want, wantErr := q.Parse(s1)

			s2 := stream.NewString(input)
			got, gotErr := alt.Parse(s2)

			assert.Equal(t, want, got)
			assert.Equal(t, wantErr == nil, gotErr == nil)
			assert.Equal(t, parsec.KindOf(wantErr), parsec.KindOf(gotErr))
			assert.Equal(t, s1.Position(), s2.Position())
			assert.Equal(t, s1.Failed(), s2.Failed())
		})
	}
}

func TestMapping(t *testing.T) {
	t.Parallel()

	t.Run("map", func(t *testing.T) {
		t.Parallel()

		number := parsec.Map(parsec.Many1String(parsec.Digit()), func(digits string) int {
			n, _ := strconv.Atoi(digits)
			return n
		})

		got, err := parsec.ParseString(number, "42")
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("map does not run on failure", func(t *testing.T) {
		t.Parallel()

		called := false
		p := parsec.Map(parsec.Digit(), func(byte) int {
			called = true
			return 0
		})

		_, err := parsec.ParseString(p, "x")
		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("return and value", func(t *testing.T) {
		t.Parallel()

		yes := parsec.Return(parsec.SkipString("yes"), func() bool { return true })
		got, err := parsec.ParseString(yes, "yes")
		require.NoError(t, err)
		assert.True(t, got)

		no := parsec.Value(parsec.String("no"), false)
		got, err = parsec.ParseString(parsec.Or(yes, no), "no")
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("optional", func(t *testing.T) {
		t.Parallel()

		sign := parsec.Optional(parsec.Char('-'), '+')

		got, err := parsec.ParseString(sign, "5")
		require.NoError(t, err)
		assert.Equal(t, byte('+'), got)

		got, err = parsec.ParseString(sign, "-5")
		require.NoError(t, err)
		assert.Equal(t, byte('-'), got)
	})

	t.Run("label replaces expectation of weak failure", func(t *testing.T) {
		t.Parallel()

		_, err := parsec.ParseString(parsec.Label(parsec.Digit(), "number"), "x")
		require.Error(t, err)
		assert.Equal(t, []string{"number"}, parsec.Expected(err))
	})

	t.Run("label keeps expectation of fatal failure", func(t *testing.T) {
		t.Parallel()

		_, err := parsec.ParseString(parsec.Label(parsec.String("ab"), "keyword"), "ac")
		require.Error(t, err)
		assert.Equal(t, []string{`"ab"`}, parsec.Expected(err))
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	// A length-prefixed field: the digit says how many letters follow.
	field := parsec.Chain(digitValue(), func(s *stream.Stream, n int) (string, error) {
		letter := parsec.Letter()
		out := make([]byte, 0, n)
		for range n {
			c, err := letter.Parse(s)
			if err != nil {
				return "", err
			}
			out = append(out, c)
		}
		return string(out), nil
	})

	got, err := parsec.ParseString(field, "3abcd")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	_, err = parsec.ParseString(field, "3ab")
	require.Error(t, err)
	assert.True(t, parsec.IsFatal(err))

	_, err = parsec.ParseString(field, "x")
	require.Error(t, err)
	assert.True(t, parsec.IsWeak(err))
}

func TestChain_PlainErrorBecomesCause(t *testing.T) {
	t.Parallel()

	errOdd := errors.New("odd digit")
	even := parsec.Chain(digitValue(), func(_ *stream.Stream, n int) (int, error) {
		if n%2 != 0 {
			return 0, errOdd
		}
		return n, nil
	})

	_, err := parsec.ParseString(even, "3")
	require.Error(t, err)

	assert.ErrorIs(t, err, errOdd)
	assert.True(t, parsec.IsFatal(err))
	assert.Contains(t, err.Error(), "odd digit")

	weak := parsec.Chain(parsec.Pure(1), func(*stream.Stream, int) (int, error) {
		return 0, errOdd
	})
	_, err = parsec.ParseString(weak, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, errOdd)
	assert.True(t, parsec.IsWeak(err))
}

func TestSequencing(t *testing.T) {
	t.Parallel()

	quoted := parsec.Between(parsec.Char('"'), parsec.ManyString(parsec.NoneOf(`"`)), parsec.Char('"'))
	got, err := parsec.ParseString(quoted, `"hi there"`)
	require.NoError(t, err)
	assert.Equal(t, "hi there", got)

	_, err = parsec.ParseString(quoted, `"open`)
	require.Error(t, err)
	assert.True(t, parsec.IsFatal(err))

	key := parsec.Then(parsec.SkipChar('@'), parsec.Many1String(parsec.Letter()))
	got, err = parsec.ParseString(key, "@name")
	require.NoError(t, err)
	assert.Equal(t, "name", got)

	word := parsec.Lexeme(parsec.Many1String(parsec.Letter()))
	s := stream.NewString("ab  \tcd")
	got, err = word.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
	assert.Equal(t, int64(5), s.Tell())

	_, err = parsec.ParseString(parsec.Seq(parsec.SkipChar('a'), parsec.SkipChar('b'), parsec.EOF()), "ab")
	require.NoError(t, err)

	_, err = parsec.ParseString(parsec.Complete(parsec.Many1String(parsec.Digit())), "12x")
	require.Error(t, err)
	assert.True(t, parsec.IsFatal(err))
	assert.Equal(t, []string{"end of input"}, parsec.Expected(err))
}
