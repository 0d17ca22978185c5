package tinyregex

import (
	"fmt"

	"github.com/coregx/tinyregex/compiler"
)

// maxPatternLength bounds the source pattern text itself, distinct from
// the compiled program's own 32766-byte ceiling (enforced independently by
// compiler.Compile); this just keeps pathological input from being handed
// to the tokenizer at all.
const maxPatternLength = 8192

// Config controls how a pattern is compiled.
type Config struct {
	// Excompat swaps the roles of "(" ")" and "\(" "\)" (see compiler.Options).
	Excompat bool

	// MaxPatternLength caps the number of bytes accepted in a source
	// pattern before compilation is attempted.
	MaxPatternLength int
}

// DefaultConfig returns the Config used by Compile: excompat disabled,
// MaxPatternLength set to maxPatternLength.
func DefaultConfig() Config {
	return Config{
		Excompat:         false,
		MaxPatternLength: maxPatternLength,
	}
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field string
	Value interface{}
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s = %v", e.Field, e.Value)
}

// Validate reports whether c is usable, returning a *ConfigError if not.
func (c Config) Validate() error {
	if c.MaxPatternLength <= 0 {
		return &ConfigError{Field: "MaxPatternLength", Value: c.MaxPatternLength}
	}
	return nil
}

func (c Config) compilerOptions() compiler.Options {
	return compiler.Options{Excompat: c.Excompat}
}
