package domain

import (
	"errors"
	"fmt"
)

// CurveShape selects the recovery-curve family.
type CurveShape string

// Supported recovery shapes.
const (
	ShapeLinear         CurveShape = "linear"
	ShapeExponential    CurveShape = "exponential"
	ShapeLogistic       CurveShape = "logistic"
	ShapeDelayedRebound CurveShape = "delayed_rebound"
)

// ErrUnknownShape is returned for curve shape names outside the supported set.
var ErrUnknownShape = errors.New("unknown curve shape")

// ParseCurveShape validates a shape name.
func ParseCurveShape(s string) (CurveShape, error) {
	switch CurveShape(s) {
	case ShapeLinear, ShapeExponential, ShapeLogistic, ShapeDelayedRebound:
		return CurveShape(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}
