package config

import (
	"errors"
	"fmt"
)

// Fatal configuration errors. Any of these aborts the resolution pass; no
// partial [Config] is ever returned alongside them.
var (
	// ErrMissingRequired indicates a required key with no value in any source.
	ErrMissingRequired = errors.New("required configuration value is missing")
	// ErrInvalidValue indicates a value that is present but failed coercion
	// (for example, a non-integer where an integer id was expected, or
	// malformed JSON where a mapping was expected).
	ErrInvalidValue = errors.New("configuration value is invalid")
)

// KeyError ties a fatal error to the configuration key and the literal
// received value that caused it.
type KeyError struct {
	// Key is the configuration key name as the operator knows it
	// (environment variable or mappings-file key).
	Key string
	// Value is the literal received payload that failed, empty for
	// missing-value errors.
	Value string
	// Err is the underlying cause; wraps ErrMissingRequired or
	// ErrInvalidValue.
	Err error
}

func (e *KeyError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("configuration key %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("configuration key %s: %v (got %q)", e.Key, e.Err, e.Value)
}

func (e *KeyError) Unwrap() error { return e.Err }

func missingKey(key string) error {
	return &KeyError{Key: key, Err: ErrMissingRequired}
}

func invalidKey(key, value string, cause error) error {
	err := error(ErrInvalidValue)
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidValue, cause)
	}
	return &KeyError{Key: key, Value: value, Err: err}
}
