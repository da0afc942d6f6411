package effect

import (
	"fmt"
	"image"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/erinpentecost/wolffx/internal/kernel"
	"github.com/erinpentecost/wolffx/internal/param"
	"github.com/erinpentecost/wolffx/internal/port"
	"github.com/erinpentecost/wolffx/internal/raster"
)

// State is a step of one Compute call.
type State int

const (
	Idle State = iota
	Validating
	Bypass
	Computing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Bypass:
		return "bypass"
	case Computing:
		return "computing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of Compute. State is Done or Failed. Image is a
// fresh buffer owned by the caller and is nil on failure.
type Result struct {
	Image *raster.Image
	State State
	// Bypassed is set when a required input was missing and Image is a
	// blank canvas.
	Bypassed bool
}

func (r Result) OK() bool { return r.State == Done }

// invocation tracks the state of one Compute call.
type invocation struct {
	log   *logrus.Entry
	state State
}

func (inv *invocation) enter(s State) {
	inv.log.WithField("from", inv.state.String()).Debugf("state %s", s)
	inv.state = s
}

func (inv *invocation) fail(err error) (Result, error) {
	inv.enter(Failed)
	inv.log.WithError(err).Error("compute failed")
	return Result{State: Failed}, err
}

func (inv *invocation) done(img *raster.Image, bypassed bool) (Result, error) {
	inv.enter(Done)
	return Result{Image: img, State: Done, Bypassed: bypassed}, nil
}

// Compute runs the effect over the bound inputs. Values are filled from
// the defaults and clamped before use. Inputs are never written to.
//
// A missing required input is not an error: the result is a blank canvas
// of the output size. A Selector index outside the bound ports fails with
// ErrIndexOutOfRange, a malformed buffer with ErrInvalidBuffer, and a
// kernel panic with ErrKernel.
func (e Effect) Compute(args port.Args, values param.Values) (res Result, err error) {
	inv := &invocation{
		log: Logger().WithFields(logrus.Fields{
			"effect": e.Name(),
			"ports":  args.Len(),
		}),
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = inv.fail(fmt.Errorf("%s: %v: %w", e.Name(), r, ErrKernel))
		}
	}()

	inv.enter(Validating)
	d := e.desc()
	resolved := param.Resolve(d.Params, values)

	required := 0
	if e.kind == Selector {
		// The raw index is checked so that a host passing an out of range
		// value hears about it instead of silently getting a clamped port.
		raw := values.Float(selectorIndex)
		if math.IsNaN(raw) {
			raw = d.Params[selectorIndex].Default
		}
		raw = math.Floor(raw)
		if raw < 0 || raw >= float64(min(args.Len(), len(d.Ports))) {
			return inv.fail(fmt.Errorf("%s: index %v with %d bound ports: %w", e.Name(), raw, args.Len(), ErrIndexOutOfRange))
		}
		required = int(raw)
	}

	for i, b := range args.Bindings {
		if !b.Valid || b.Image == nil {
			continue
		}
		if verr := b.Image.Validate(); verr != nil {
			return inv.fail(fmt.Errorf("%s: port %d: %w", e.Name(), i, verr))
		}
	}

	size := args.CanvasSize(required)
	if args.Invalid(required) {
		inv.enter(Bypass)
		inv.log.WithField("port", e.PortName(required)).Debug("required input missing")
		return inv.done(raster.New(size.X, size.Y), true)
	}

	inv.enter(Computing)
	out, err := e.run(args, required, resolved, size)
	if err != nil {
		return inv.fail(fmt.Errorf("%s: %w", e.Name(), err))
	}
	return inv.done(out, false)
}

// canvas copies the input on port i into a fresh buffer of the output
// size at the input's placement.
func canvas(args port.Args, i int, size image.Point) *raster.Image {
	out := raster.New(size.X, size.Y)
	dx, dy := 0, 0
	if b, ok := args.Rect(i).Bounds(); ok {
		dx, dy = b.Min.X, b.Min.Y
	}
	out.CopyAt(args.Get(i), dx, dy)
	return out
}

func (e Effect) run(args port.Args, required int, v param.Values, size image.Point) (*raster.Image, error) {
	if e.kind == Selector {
		inputs := make([]*raster.Image, args.Len())
		for i := range inputs {
			inputs[i] = args.Get(i)
		}
		picked, err := kernel.Select(inputs, required)
		if err != nil {
			return nil, err
		}
		sel := args
		sel.Bindings = []port.Binding{{Image: picked, Rect: args.Rect(required), Valid: true}}
		return canvas(sel, 0, size), nil
	}

	src := canvas(args, required, size)
	var out *raster.Image
	switch e.kind {
	case BlurChannels:
		out = kernel.BlurChannels(src, v.Float(blurR), v.Float(blurG), v.Float(blurB))
	case Diffusion:
		out = kernel.Diffuse(src, v.Float(diffusionBlur), v.Float(diffusionMix))
	case LumaThresholdTwo:
		out = kernel.LumaThreshold(src,
			v.Float(thresholdMin), v.Float(thresholdMax),
			v.Float(thresholdInvert) != 0,
			v.Float(thresholdKeepAlpha) > 0.999)
	case OneChannel:
		out = kernel.Isolate(src, v.Floor(oneChannelChannel), v.Bool(oneChannelKeepAlpha, 1))
	case SeparateChannels:
		out = kernel.Separate(src, v.Int(separationH), v.Int(separationV))
	case Slide:
		out = kernel.Slide(src, v.Float(slideX), v.Float(slideY))
	default:
		return nil, fmt.Errorf("no kernel for %v: %w", e.kind, ErrKernel)
	}
	if out == nil || out.Width != size.X || out.Height != size.Y {
		return nil, fmt.Errorf("kernel returned wrong size: %w", ErrKernel)
	}
	return out, nil
}
