package types

import (
	"errors"
	"fmt"
)

// Configuration errors
var (
	ErrInvalidPair      = errors.New("ifc: invalid electrode pair")
	ErrInvalidFrequency = errors.New("ifc: frequency must be positive")
	ErrInvalidMedium    = errors.New("ifc: invalid medium")
	ErrInvalidGrid      = errors.New("ifc: invalid grid")
	ErrInvalidWaveform  = errors.New("ifc: invalid waveform parameter")
	ErrLengthMismatch   = errors.New("ifc: parameter length does not match electrode count")
	ErrNoSamples        = errors.New("ifc: waveform has no samples")
	ErrZeroWeights      = errors.New("ifc: electrode weights sum to zero")
)

// Degenerate field errors
var (
	ErrNoPairs   = errors.New("ifc: no electrode pairs")
	ErrAllMasked = errors.New("ifc: every grid point is masked")
	ErrZeroField = errors.New("ifc: field maximum is zero")
)

// ConfigError names the parameter that failed validation
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err with the offending field
func NewConfigError(field string, value any, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}
