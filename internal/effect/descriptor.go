// Package effect is the contract a host uses to query and run the
// filters: ports, parameters, region inference and compute.
//
// Each filter is a Kind. Its metadata lives in a read-only table and its
// behavior is chosen by switching on the Kind, so adding a filter means a
// new table row plus a case in the two dispatch functions.
package effect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erinpentecost/wolffx/internal/param"
)

type Kind int

const (
	BlurChannels Kind = iota
	Diffusion
	LumaThresholdTwo
	OneChannel
	SeparateChannels
	Slide
	Selector

	kindCount
)

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return descriptors[k].Name
}

// Descriptor is the static shape of an effect.
type Descriptor struct {
	Name   string
	Ports  []string
	Groups []string
	Params []param.Prototype
}

// Validate checks the table invariants of d.
func (d Descriptor) Validate() error {
	if len(d.Ports) == 0 {
		return fmt.Errorf("%s: no ports", d.Name)
	}
	for i, p := range d.Ports {
		if p == "" {
			return fmt.Errorf("%s: port %d has no name", d.Name, i)
		}
	}
	if err := param.ValidateTable(d.Groups, d.Params); err != nil {
		return fmt.Errorf("%s: %w", d.Name, err)
	}
	return nil
}

const groupDefault = 0

var defaultGroups = []string{"Default"}

// Parameter indices per kind.
const (
	blurR = iota
	blurG
	blurB
)

const (
	diffusionBlur = iota
	diffusionMix
)

const (
	thresholdMin = iota
	thresholdMax
	thresholdInvert
	thresholdKeepAlpha
)

const (
	oneChannelChannel = iota
	oneChannelKeepAlpha
)

const (
	separationH = iota
	separationV
)

const (
	slideX = iota
	slideY
)

const selectorIndex = 0

const selectorPorts = 10

var descriptors = [kindCount]Descriptor{
	BlurChannels: {
		Name:   "BlurChannels",
		Ports:  []string{"Input"},
		Groups: defaultGroups,
		Params: []param.Prototype{
			blurR: {Name: "Blur_Amount_R", Group: groupDefault, Default: 0, Min: 0, Max: 50},
			blurG: {Name: "Blur_Amount_G", Group: groupDefault, Default: 0, Min: 0, Max: 50},
			blurB: {Name: "Blur_Amount_B", Group: groupDefault, Default: 0, Min: 0, Max: 50},
		},
	},
	Diffusion: {
		Name:   "Diffusion",
		Ports:  []string{"Input"},
		Groups: defaultGroups,
		Params: []param.Prototype{
			diffusionBlur: {Name: "Blur_Amount", Group: groupDefault, Default: 5, Min: 0, Max: 50},
			diffusionMix:  {Name: "Mix", Group: groupDefault, Default: 1, Min: 0, Max: 1},
		},
	},
	LumaThresholdTwo: {
		Name:   "LumaThresholdTwo",
		Ports:  []string{"Input"},
		Groups: defaultGroups,
		Params: []param.Prototype{
			thresholdMin:       {Name: "Threshold_Min", Group: groupDefault, Default: 0, Min: 0, Max: 255},
			thresholdMax:       {Name: "Threshold_Max", Group: groupDefault, Default: 255, Min: 0, Max: 255},
			thresholdInvert:    {Name: "Invert", Group: groupDefault, Default: 0, Min: 0, Max: 1},
			thresholdKeepAlpha: {Name: "Keep_Alpha", Group: groupDefault, Default: 0, Min: 0, Max: 1},
		},
	},
	OneChannel: {
		Name:   "OneChannel",
		Ports:  []string{"Input"},
		Groups: defaultGroups,
		Params: []param.Prototype{
			oneChannelChannel:   {Name: "Channel", Group: groupDefault, Default: 1, Min: 1, Max: 4},
			oneChannelKeepAlpha: {Name: "Keep_Alpha", Group: groupDefault, Default: 1, Min: 0, Max: 1},
		},
	},
	SeparateChannels: {
		Name:   "SeparateChannels",
		Ports:  []string{"Input"},
		Groups: defaultGroups,
		Params: []param.Prototype{
			separationH: {Name: "Separation_H", Group: groupDefault, Default: 5, Min: 0, Max: 200},
			separationV: {Name: "Separation_V", Group: groupDefault, Default: 0, Min: 0, Max: 200},
		},
	},
	Slide: {
		Name:   "Slide",
		Ports:  []string{"Input"},
		Groups: defaultGroups,
		Params: []param.Prototype{
			slideX: {Name: "X", Group: groupDefault, Default: 0, Min: 0, Max: 100},
			slideY: {Name: "Y", Group: groupDefault, Default: 0, Min: 0, Max: 100},
		},
	},
	Selector: {
		Name:   "Selector",
		Ports:  selectorPortNames(),
		Groups: defaultGroups,
		Params: []param.Prototype{
			selectorIndex: {Name: "Index", Group: groupDefault, Default: 0, Min: 0, Max: selectorPorts - 1},
		},
	},
}

func selectorPortNames() []string {
	names := make([]string, selectorPorts)
	for i := range names {
		names[i] = fmt.Sprintf("Input_%d", i)
	}
	return names
}

// Kinds lists every effect in table order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}

// Lookup finds an effect by name, ignoring case.
func Lookup(name string) (Effect, error) {
	for k, d := range descriptors {
		if strings.EqualFold(d.Name, name) {
			return Effect{kind: Kind(k)}, nil
		}
	}
	return Effect{}, fmt.Errorf("effect %q: %w", name, ErrUnknownEffect)
}

// Names lists every effect name in table order.
func Names() []string {
	out := make([]string, 0, kindCount)
	for _, d := range descriptors {
		out = append(out, d.Name)
	}
	return out
}

func cloneDescriptor(d Descriptor) Descriptor {
	return Descriptor{
		Name:   d.Name,
		Ports:  slices.Clone(d.Ports),
		Groups: slices.Clone(d.Groups),
		Params: slices.Clone(d.Params),
	}
}
