package errors

import "math"

// MaxPanelCount is the largest panel count accepted from users.
const MaxPanelCount = 50

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidatePositive requires field to hold a finite value above zero.
func ValidatePositive(code Code, field string, v float64) error {
	switch {
	case !finite(v):
		return Field(code, field, "must be a finite number")
	case v <= 0:
		return Field(code, field, "must be positive, got %g", v)
	}
	return nil
}

// ValidateNonNegative requires field to hold a finite value of at least zero.
func ValidateNonNegative(code Code, field string, v float64) error {
	switch {
	case !finite(v):
		return Field(code, field, "must be a finite number")
	case v < 0:
		return Field(code, field, "cannot be negative, got %g", v)
	}
	return nil
}

// ValidatePanelCount requires n to lie in [1, MaxPanelCount].
func ValidatePanelCount(n int) error {
	if n < 1 || n > MaxPanelCount {
		return Field(ErrCodeInvalidProportion, "proportion.panel_count",
			"must be between 1 and %d, got %d", MaxPanelCount, n)
	}
	return nil
}
