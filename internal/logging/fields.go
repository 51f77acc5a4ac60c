package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldFormat = "format"

	// Configuration fields.
	FieldConfig     = "config"
	FieldSource     = "source"
	FieldGrammar    = "grammar"
	FieldStart      = "start"
	FieldTabWidth   = "tab_width"
	FieldRequireEOF = "require_eof"

	// Parse statistics.
	FieldConsumed    = "consumed"
	FieldPosition    = "pos"
	FieldKind        = "kind"
	FieldProductions = "productions"
	FieldSeekable    = "seekable"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
