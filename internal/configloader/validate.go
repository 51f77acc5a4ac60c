package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/parsec/internal/logging"
	"github.com/yaklabco/parsec/pkg/config"
	"github.com/yaklabco/parsec/pkg/fsutil"
	"github.com/yaklabco/parsec/pkg/grammars"
)

// maxTabWidth bounds tab_width to keep column numbers meaningful.
const maxTabWidth = 64

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "ebnf.start").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings. Empty fields are
// accepted so that partial configurations from a single file validate too.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.TabWidth < 0 || cfg.TabWidth > maxTabWidth {
		result.addError("tab_width", cfg.TabWidth, "tab width must be between 1 and %d", maxTabWidth)
	}

	if cfg.LogLevel != "" && !logging.ValidLevel(cfg.LogLevel) {
		result.addError("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Grammar != "" {
		if _, ok := grammars.Lookup(cfg.Grammar); !ok {
			result.addError("grammar", cfg.Grammar, "unknown grammar %q; must be one of: %s",
				cfg.Grammar, strings.Join(grammars.Names(), ", "))
		}
	}

	validateEBNF(cfg, result)

	return result
}

func validateEBNF(cfg *config.Config, result *ValidationResult) {
	if cfg.EBNF.Path == "" {
		if cfg.EBNF.Start != "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "ebnf.start",
				Value:   cfg.EBNF.Start,
				Message: "start production set without ebnf.path; it will be ignored",
			})
		}
		return
	}

	if !fsutil.IsFile(cfg.EBNF.Path) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "ebnf.path",
			Value:   cfg.EBNF.Path,
			Message: fmt.Sprintf("grammar file %q not found", cfg.EBNF.Path),
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
