package pixfilter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/soypat/geometry/ms2"
)

// Control represents an editable parameter of a filter.
// A successful ChangeValue takes effect on the next Apply; a filter must not
// be edited while it is running.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

// ControlOrdered is a numeric parameter bounded by [Min, Max].
type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	OnChange    func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}
func (co *ControlOrdered[T]) ActualValue() any { return co.Value }
func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, co.Value)
	}
	if v < co.Min || v > co.Max {
		return fmt.Errorf("new value %v exceeds limits %v..%v", v, co.Min, co.Max)
	}
	return commit(&co.Value, v, co.OnChange)
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// enum is an integer option with a display name shown in dropdowns.
type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum maps to dropdown kind of list.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}
func (ce *ControlEnum[T]) ActualValue() any {
	return ce.Value
}
func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, ce.Value)
	}
	if !slices.Contains(ce.ValidValues, v) {
		return fmt.Errorf("value %v of %T not valid", v, v)
	}
	return commit(&ce.Value, v, ce.OnChange)
}

// ControlColor is a color picker kind of control. Alpha is ignored.
type ControlColor struct {
	Name        string
	Description string
	Value       Color
	OnChange    func(Color) error
}

func (cc *ControlColor) Describe() (name, description string) {
	return cc.Name, cc.Description
}
func (cc *ControlColor) ActualValue() any { return cc.Value }
func (cc *ControlColor) ChangeValue(newValue any) error {
	c, ok := newValue.(Color)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, cc.Value)
	}
	c.A = 255
	return commit(&cc.Value, c, cc.OnChange)
}

// CurvePoint is a control point for curve-type controls.
// X represents input (0-1), Y represents output (0-1).
type CurvePoint = ms2.Vec

// ControlCurve is a piecewise linear curve control with editable control points.
// Points are in normalized 0-1 range for both X (input) and Y (output).
type ControlCurve struct {
	Name        string
	Description string
	Points      []CurvePoint // Control points, X/Y in 0-1 range.
	OnChange    func([]CurvePoint) error
}

func (cc *ControlCurve) Describe() (name, description string) {
	return cc.Name, cc.Description
}

func (cc *ControlCurve) ActualValue() any {
	return cc.Points
}

func (cc *ControlCurve) ChangeValue(newValue any) error {
	pts, ok := newValue.([]CurvePoint)
	if !ok {
		return fmt.Errorf("new value %T not of type []CurvePoint", newValue)
	}
	if err := ValidateCurve(pts); err != nil {
		return err
	}
	pts = slices.Clone(pts)
	return commit(&cc.Points, pts, cc.OnChange)
}

// ValidateCurve checks points lie in the unit square with strictly
// increasing X. At least two points are required.
func ValidateCurve(pts []CurvePoint) error {
	if len(pts) < 2 {
		return errors.New("curve needs at least two points")
	}
	for i, p := range pts {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return fmt.Errorf("curve point %d (%v,%v) outside unit square", i, p.X, p.Y)
		}
		if i > 0 && p.X <= pts[i-1].X {
			return fmt.Errorf("curve point %d X=%v not increasing", i, p.X)
		}
	}
	return nil
}

// commit runs onChange (if any) and stores v only when it succeeds.
func commit[T any](dst *T, v T, onChange func(T) error) error {
	if onChange != nil {
		if err := onChange(v); err != nil {
			return err
		}
	}
	*dst = v
	return nil
}
