// Package validation collects field-level violations for mutating
// operations. Violations are data, not exceptions: services return them
// wrapped in *Error and callers render the reasons to the user.
package validation

import (
	"strings"
	"time"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Err returns the violations as an error, or nil when there are none.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Error{Violations: v}
}

// Error carries the full violation set of a rejected operation.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for field, reason := range e.Violations {
		parts = append(parts, field+": "+reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Basic validators

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// RequiredRef flags an unselected lookup reference (zero id).
func RequiredRef(field string, id uint, v Violations) {
	if id == 0 {
		v[field] = "required"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// NotBefore flags val being earlier than ref (delivery date vs. order date).
func NotBefore(field string, val, ref time.Time, v Violations) {
	if val.Before(ref) {
		v[field] = "must_not_be_earlier"
	}
}
