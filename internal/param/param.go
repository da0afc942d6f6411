// Package param describes the numeric controls an effect exposes.
package param

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidPrototype = errors.New("invalid parameter prototype")

// Prototype is the metadata of one parameter.
type Prototype struct {
	Name    string
	Group   int
	Default float64
	Min     float64
	Max     float64
}

// Clamp limits v to [Min, Max]. NaN becomes Default.
func (p Prototype) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Validate checks the prototype against a table of groupCount groups.
func (p Prototype) Validate(groupCount int) error {
	if p.Name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidPrototype)
	}
	if p.Min > p.Max {
		return fmt.Errorf("%q: min %v > max %v: %w", p.Name, p.Min, p.Max, ErrInvalidPrototype)
	}
	if p.Default < p.Min || p.Default > p.Max {
		return fmt.Errorf("%q: default %v outside [%v, %v]: %w", p.Name, p.Default, p.Min, p.Max, ErrInvalidPrototype)
	}
	if p.Group < 0 || p.Group >= groupCount {
		return fmt.Errorf("%q: group %d does not exist: %w", p.Name, p.Group, ErrInvalidPrototype)
	}
	return nil
}

// ValidateTable checks every prototype against groups and rejects
// duplicate names.
func ValidateTable(groups []string, params []Prototype) error {
	seen := make(map[string]struct{}, len(params))
	for i, p := range params {
		if err := p.Validate(len(groups)); err != nil {
			return fmt.Errorf("param %d: %w", i, err)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("param %d: duplicate name %q: %w", i, p.Name, ErrInvalidPrototype)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// Values holds one runtime value per prototype, by index.
type Values []float64

// Float returns value i, or 0 when it was not supplied.
func (v Values) Float(i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// Int truncates value i toward zero.
func (v Values) Int(i int) int {
	f := v.Float(i)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Floor rounds value i down.
func (v Values) Floor(i int) int {
	f := v.Float(i)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Floor(f))
}

// Bool reports whether value i is at least threshold.
func (v Values) Bool(i int, threshold float64) bool {
	return v.Float(i) >= threshold
}

// Defaults returns the default value of every prototype.
func Defaults(params []Prototype) Values {
	out := make(Values, len(params))
	for i, p := range params {
		out[i] = p.Default
	}
	return out
}

// Bound clamps every value into range. Missing entries read as zero
// before clamping, and NaN becomes the default. The input is not modified.
func Bound(params []Prototype, v Values) Values {
	out := make(Values, len(params))
	for i, p := range params {
		out[i] = p.Clamp(v.Float(i))
	}
	return out
}

// Resolve fills missing entries from the defaults and clamps every value
// into range. The input is not modified.
func Resolve(params []Prototype, v Values) Values {
	out := Defaults(params)
	for i, p := range params {
		if i < len(v) {
			out[i] = p.Clamp(v[i])
		}
	}
	return out
}

// Index returns the position of the prototype called name.
func Index(params []Prototype, name string) (int, bool) {
	for i, p := range params {
		if p.Name == name {
			return i, true
		}
	}
	return -1, false
}
