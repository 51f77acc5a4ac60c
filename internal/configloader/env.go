package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/parsec/pkg/config"
)

// envVarPrefix is the prefix for all parsec environment variables.
const envVarPrefix = "PARSEC_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TAB_WIDTH":        {field: "tab_width", typ: envTypeInt, description: "Tab stop interval for column numbers"},
	"LOG_LEVEL":        {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn or error"},
	"FORMAT":           {field: "format", typ: envTypeString, description: "Output format: text or json"},
	"COLOR":            {field: "color", typ: envTypeString, description: "Color mode: auto, always or never"},
	"REQUIRE_EOF":      {field: "require_eof", typ: envTypeBool, description: "Reject trailing input: true or false"},
	"GRAMMAR":          {field: "grammar", typ: envTypeString, description: "Built-in grammar name"},
	"EBNF_PATH":        {field: "ebnf.path", typ: envTypeString, description: "EBNF grammar file"},
	"EBNF_START":       {field: "ebnf.start", typ: envTypeString, description: "EBNF start production"},
	"EBNF_SKIP_BLANKS": {field: "ebnf.skip_blanks", typ: envTypeBool, description: "Skip white space between tokens"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with PARSEC_ (e.g., PARSEC_GRAMMAR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "log_level":
		cfg.LogLevel = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	case "grammar":
		cfg.Grammar = value
	case "ebnf.path":
		cfg.EBNF.Path = value
	case "ebnf.start":
		cfg.EBNF.Start = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "require_eof":
		cfg.RequireEOF = config.BoolPtr(value)
	case "ebnf.skip_blanks":
		cfg.EBNF.SkipBlanks = config.BoolPtr(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "tab_width":
		cfg.TabWidth = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	slices.SortFunc(vars, func(a, b EnvVar) int {
		return strings.Compare(a.Name, b.Name)
	})
	return vars
}
