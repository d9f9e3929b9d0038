package meta

// Config controls how an Engine searches.
//
// Only candidate selection is configurable; the matching semantics of a
// pattern never change with the configuration.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // try every offset
//	engine, err := meta.CompileWithConfig(`(\w+)@example\.com`, config)
type Config struct {
	// EnablePrefilter enables literal-based candidate search.
	// When false, unanchored patterns are tried at every offset.
	// Default: true
	EnablePrefilter bool

	// EnableTracking wraps the prefilter in a prefilter.Tracker for each
	// search, so a prefilter whose candidates rarely match is retired in
	// favor of trying every offset.
	// Default: false
	EnableTracking bool

	// MinLiteralLen is the shortest prefix literal worth a prefilter.
	// Default: 1 (single-byte prefilters use memchr)
	MinLiteralLen int

	// MaxLiterals limits the number of alternative prefix literals.
	// Patterns with more alternatives are scanned without a prefilter.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen caps the length of each prefix literal.
	// Default: 64
	MaxLiteralLen int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		EnableTracking:  false,
		MinLiteralLen:   1,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges (checked only when EnablePrefilter is set):
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//   - MaxLiteralLen: 1 to 4,096
func (c Config) Validate() error {
	if !c.EnablePrefilter {
		return nil
	}
	if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
		return &ConfigError{
			Field:   "MinLiteralLen",
			Message: "must be between 1 and 64",
		}
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
		return &ConfigError{
			Field:   "MaxLiterals",
			Message: "must be between 1 and 1,000",
		}
	}
	if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 4_096 {
		return &ConfigError{
			Field:   "MaxLiteralLen",
			Message: "must be between 1 and 4,096",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "backre: invalid config: " + e.Field + ": " + e.Message
}
