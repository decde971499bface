package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// FieldError is one failed configuration check
type FieldError struct {
	Field string // dotted path, e.g. "config.simulation.bins"
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// ConfigValidator checks configuration values fluently and collects every
// failure, so a bad file is reported in one pass.
type ConfigValidator struct {
	section string
	errs    []error
}

// NewConfigValidator starts a validator whose field names are prefixed
// with section.
func NewConfigValidator(section string) *ConfigValidator {
	return &ConfigValidator{section: section}
}

func (cv *ConfigValidator) add(field string, err error) *ConfigValidator {
	cv.errs = append(cv.errs, &FieldError{Field: cv.section + "." + field, Err: err})
	return cv
}

func (cv *ConfigValidator) failf(field, format string, args ...any) *ConfigValidator {
	return cv.add(field, fmt.Errorf(format, args...))
}

// Required rejects blank strings.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if strings.TrimSpace(value) != "" {
		return cv
	}
	return cv.failf(field, "must not be empty")
}

func (cv *ConfigValidator) RangeInt(field string, value, lo, hi int) *ConfigValidator {
	if lo <= value && value <= hi {
		return cv
	}
	return cv.failf(field, "%d is outside [%d, %d]", value, lo, hi)
}

// RangeFloat also rejects NaN.
func (cv *ConfigValidator) RangeFloat(field string, value, lo, hi float64) *ConfigValidator {
	if !math.IsNaN(value) && lo <= value && value <= hi {
		return cv
	}
	return cv.failf(field, "%v is outside [%v, %v]", value, lo, hi)
}

func (cv *ConfigValidator) RangeDuration(field string, value, lo, hi time.Duration) *ConfigValidator {
	if lo <= value && value <= hi {
		return cv
	}
	return cv.failf(field, "%v is outside [%v, %v]", value, lo, hi)
}

func (cv *ConfigValidator) Positive(field string, value int) *ConfigValidator {
	if value > 0 {
		return cv
	}
	return cv.failf(field, "%d must be positive", value)
}

// Custom records the error returned by fn, if any.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.add(field, err)
	}
	return cv
}

// When runs validations only if condition holds.
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// Validate joins every collected *FieldError, or returns nil.
func (cv *ConfigValidator) Validate() error {
	return errors.Join(cv.errs...)
}
