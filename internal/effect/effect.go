package effect

import (
	"fmt"

	"github.com/erinpentecost/wolffx/internal/param"
	"github.com/erinpentecost/wolffx/internal/raster"
	"github.com/erinpentecost/wolffx/internal/roi"
)

// Effect is one filter variant. The zero value is BlurChannels. Effects
// carry no mutable state and may be shared between goroutines.
type Effect struct {
	kind Kind
}

// New returns the effect of kind k.
func New(k Kind) (Effect, error) {
	if k < 0 || k >= kindCount {
		return Effect{}, fmt.Errorf("%v: %w", k, ErrUnknownEffect)
	}
	return Effect{kind: k}, nil
}

func (e Effect) Kind() Kind { return e.kind }

func (e Effect) Name() string { return e.desc().Name }

func (e Effect) desc() *Descriptor { return &descriptors[e.kind] }

// Descriptor returns a copy of the effect's static shape.
func (e Effect) Descriptor() Descriptor { return cloneDescriptor(*e.desc()) }

func (e Effect) PortCount() int { return len(e.desc().Ports) }

// PortName returns the name of port i, or "" when i is out of range.
func (e Effect) PortName(i int) string {
	if i < 0 || i >= e.PortCount() {
		return ""
	}
	return e.desc().Ports[i]
}

func (e Effect) ParamGroupCount() int { return len(e.desc().Groups) }

// ParamGroupName returns the name of group i, or "" when i is out of
// range.
func (e Effect) ParamGroupName(i int) string {
	if i < 0 || i >= e.ParamGroupCount() {
		return ""
	}
	return e.desc().Groups[i]
}

func (e Effect) ParamCount() int { return len(e.desc().Params) }

// ParamPrototype returns prototype i, or the zero prototype when i is out
// of range.
func (e Effect) ParamPrototype(i int) param.Prototype {
	if i < 0 || i >= e.ParamCount() {
		return param.Prototype{}
	}
	return e.desc().Params[i]
}

// Defaults returns the default value of every parameter.
func (e Effect) Defaults() param.Values {
	return param.Defaults(e.desc().Params)
}

// RequiredInputRegion returns the input region needed to compute
// requested. The host calls it before fetching inputs. Missing values
// count as zero and every value is clamped the way Compute clamps it.
func (e Effect) RequiredInputRegion(requested raster.Rect, values param.Values) raster.Rect {
	return e.rule(param.Bound(e.desc().Params, values)).Grow(requested)
}

func (e Effect) rule(v param.Values) roi.Rule {
	switch e.kind {
	case BlurChannels:
		return roi.Radius{Radii: []int{v.Int(blurR), v.Int(blurG), v.Int(blurB)}}
	case Diffusion:
		return roi.Unbounded{}
	default:
		return roi.Identity{}
	}
}
