// Package config defines the configuration types of the parsec tool.
// These types are plain data; discovery and merging live in configloader.
package config

import (
	"github.com/yaklabco/parsec/pkg/stream"
)

// OutputFormat specifies how parse results are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// ColorMode controls colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultGrammar is the built-in grammar used when none is configured.
const DefaultGrammar = "arith"

// EBNFConfig selects a grammar file instead of a built-in grammar.
type EBNFConfig struct {
	// Path is the grammar file.
	Path string `toml:"path,omitempty" yaml:"path,omitempty"`

	// Start is the start production.
	Start string `toml:"start,omitempty" yaml:"start,omitempty"`

	// SkipBlanks skips white space between tokens of non-lexical productions.
	SkipBlanks *bool `toml:"skip_blanks,omitempty" yaml:"skip_blanks,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// TabWidth is the tab stop interval used for column numbers.
	TabWidth int `toml:"tab_width,omitempty" yaml:"tab_width,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Format is the output format of the parse command.
	Format OutputFormat `toml:"format,omitempty" yaml:"format,omitempty"`

	// Color controls colored diagnostics.
	Color ColorMode `toml:"color,omitempty" yaml:"color,omitempty"`

	// RequireEOF makes trailing input a parse error.
	RequireEOF *bool `toml:"require_eof,omitempty" yaml:"require_eof,omitempty"`

	// Grammar names the built-in grammar to use.
	Grammar string `toml:"grammar,omitempty" yaml:"grammar,omitempty"`

	// EBNF configures grammar-file parsing; it wins over Grammar when Path is set.
	EBNF EBNFConfig `toml:"ebnf,omitempty" yaml:"ebnf,omitempty"`

	// CLI-level options (not persisted to config files).

	// Trace logs every parser entry and exit while parsing.
	Trace bool `toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		TabWidth:   stream.DefaultTabWidth,
		LogLevel:   "info",
		Format:     FormatText,
		Color:      ColorAuto,
		RequireEOF: BoolPtr(true),
		Grammar:    DefaultGrammar,
		EBNF: EBNFConfig{
			SkipBlanks: BoolPtr(false),
		},
	}
}

// RequireEOFEnabled reports whether trailing input is an error.
func (c *Config) RequireEOFEnabled() bool {
	return Bool(c.RequireEOF)
}

// UsesEBNF reports whether a grammar file is configured.
func (c *Config) UsesEBNF() bool {
	return c.EBNF.Path != ""
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Bool dereferences b, treating nil as false.
func Bool(b *bool) bool {
	return b != nil && *b
}
