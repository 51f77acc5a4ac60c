// Package parsec provides parser combinators over a positioned character
// stream.
//
// # Parsers
//
// A *Parser[T] reads from a *stream.Stream and yields a T or an error.
// Parsers are built once, shared freely and may refer to themselves through
// Ref, which is how recursive grammars are written. Void parsers produce
// Unit.
//
// # Failures
//
// Every failure is a *Error of one of two kinds:
//
//   - Weak: the parser failed without consuming input. Or moves on to the
//     next alternative, Many and SepBy stop and succeed with what they have.
//
//   - Fatal: the parser consumed input before failing. It propagates through
//     every combinator until a Try rewinds it, or up to the caller.
//
// The kind is decided in one place, Parser.Parse, by comparing the stream
// offset at entry with the offset at failure. This makes sequencing
// combinators such as Cat, Then and SepBy escalate automatically: once an
// earlier part has consumed input, a weak failure of a later part becomes
// fatal. Use errors.Is with ErrNoMatch or ErrSyntax, or IsWeak and IsFatal,
// to inspect a failure.
//
// The stream's fail flag mirrors the outcome of the most recent invocation.
//
// # Combinators
//
//   - Characters: Char, Any, OneOf, NoneOf, Range, Satisfy, Letter, Digit,
//     AlphaNum, Blank, Space, String, EOF.
//   - Values: Map, Return, Value, Chain, Skip, Pure, Optional, Label.
//   - Text: Lift, Cat, Concat, ManyString, SepByString.
//   - Repetition: Many, Many1, SkipMany, SkipMany1.
//   - Sequencing: Then, ThenSkip, Seq, Between, Lexeme, Complete.
//   - Choice: Or, Try.
//   - Lists: SepBy, SepBy1, SkipSepBy, SkipSepBy1.
//
// Grammars should be LL(1): each alternative of an Or should commit on its
// first character. Try provides backtracking where that is impossible, and
// needs a seekable stream to do so.
package parsec
