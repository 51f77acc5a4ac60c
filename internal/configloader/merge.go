package configloader

import "github.com/yaklabco/parsec/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if non-nil, so false can be set
//   - The ebnf table is merged field by field
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.TabWidth != 0 {
		result.TabWidth = override.TabWidth
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.RequireEOF != nil {
		result.RequireEOF = config.BoolPtr(*override.RequireEOF)
	}
	if override.Grammar != "" {
		result.Grammar = override.Grammar
	}

	if override.EBNF.Path != "" {
		result.EBNF.Path = override.EBNF.Path
	}
	if override.EBNF.Start != "" {
		result.EBNF.Start = override.EBNF.Start
	}
	if override.EBNF.SkipBlanks != nil {
		result.EBNF.SkipBlanks = config.BoolPtr(*override.EBNF.SkipBlanks)
	}

	// CLI-only: can only be switched on.
	if override.Trace {
		result.Trace = true
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
