package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"go.coder.com/cli"

	"github.com/erinpentecost/wolffx/internal/dds"
	"github.com/erinpentecost/wolffx/internal/effect"
	"github.com/erinpentecost/wolffx/internal/job"
	"github.com/erinpentecost/wolffx/internal/raster"
	"github.com/erinpentecost/wolffx/internal/rasterio"
)

type listCmd struct{}

func (c *listCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{Name: "list", Desc: "List the available effects."}
}

func (c *listCmd) Run(fl *pflag.FlagSet) {
	check(listEffects(os.Stdout))
}

func listEffects(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EFFECT\tPORTS\tPARAMS")
	for _, k := range effect.Kinds() {
		e, err := effect.New(k)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name(), e.PortCount(), e.ParamCount())
	}
	return tw.Flush()
}

type describeCmd struct{}

func (c *describeCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "describe",
		Usage: "EFFECT",
		Desc:  "Show the ports and parameters of an effect.",
	}
}

func (c *describeCmd) Run(fl *pflag.FlagSet) {
	if fl.NArg() != 1 {
		fl.Usage()
		os.Exit(2)
	}
	check(describeEffect(os.Stdout, fl.Arg(0)))
}

func describeEffect(w io.Writer, name string) error {
	e, err := effect.Lookup(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n\nPorts:\n", e.Name())
	for i := range e.PortCount() {
		fmt.Fprintf(w, "  %d  %s\n", i, e.PortName(i))
	}
	fmt.Fprintln(w, "\nParameters:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tGROUP\tDEFAULT\tMIN\tMAX")
	for i := range e.ParamCount() {
		p := e.ParamPrototype(i)
		fmt.Fprintf(tw, "  %s\t%s\t%g\t%g\t%g\n", p.Name, e.ParamGroupName(p.Group), p.Default, p.Min, p.Max)
	}
	return tw.Flush()
}

type roiCmd struct {
	rect   string
	params []string
}

func (c *roiCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "roi",
		Usage: "EFFECT --rect X,Y,W,H [--param NAME=VALUE]...",
		Desc:  "Print the input region an effect needs to produce a rectangle.",
	}
}

func (c *roiCmd) RegisterFlags(fl *pflag.FlagSet) {
	fl.StringVar(&c.rect, "rect", "0,0,100,100", "requested output rectangle")
	fl.StringArrayVarP(&c.params, "param", "p", nil, "parameter value as NAME=VALUE")
}

func (c *roiCmd) Run(fl *pflag.FlagSet) {
	if fl.NArg() != 1 {
		fl.Usage()
		os.Exit(2)
	}
	region, err := requiredRegion(fl.Arg(0), c.rect, c.params)
	check(err)
	fmt.Println(region)
}

func requiredRegion(name, rect string, params []string) (raster.Rect, error) {
	e, err := effect.Lookup(name)
	if err != nil {
		return raster.Rect{}, err
	}
	r, err := parseRect(rect)
	if err != nil {
		return raster.Rect{}, err
	}
	named, err := parseParams(params)
	if err != nil {
		return raster.Rect{}, err
	}
	values, err := job.Values(e, named)
	if err != nil {
		return raster.Rect{}, err
	}
	return e.RequiredInputRegion(r, values), nil
}

// outputFlags are shared by commands that write images.
type outputFlags struct {
	quality int
	codec   string
}

func (o *outputFlags) register(fl *pflag.FlagSet) {
	fl.IntVar(&o.quality, "quality", 0, "JPEG quality, 1 to 100")
	fl.StringVar(&o.codec, "codec", dds.Lossless.String(), "DDS codec: lossless or dxt1")
}

func (o *outputFlags) options() (rasterio.Options, error) {
	codec, err := dds.ParseCodec(o.codec)
	if err != nil {
		return rasterio.Options{}, err
	}
	return rasterio.Options{JPEGQuality: o.quality, DDSCodec: codec}, nil
}

type applyCmd struct {
	logFlags
	outputFlags
	output string
	size   string
	params []string
}

func (c *applyCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "apply",
		Usage: "EFFECT -o OUTPUT [--param NAME=VALUE]... INPUT...",
		Desc:  "Run one effect over input images, one per port. Pass \"\" to leave a port unbound.",
	}
}

func (c *applyCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.logFlags.register(fl)
	c.outputFlags.register(fl)
	fl.StringVarP(&c.output, "output", "o", "", "output image path")
	fl.StringVar(&c.size, "size", "", "output canvas size as WxH")
	fl.StringArrayVarP(&c.params, "param", "p", nil, "parameter value as NAME=VALUE")
}

func (c *applyCmd) Run(fl *pflag.FlagSet) {
	if fl.NArg() < 1 || c.output == "" {
		fl.Usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	check(c.apply(ctx, fl.Arg(0), fl.Args()[1:]))
}

func (c *applyCmd) apply(ctx context.Context, name string, inputs []string) error {
	named, err := parseParams(c.params)
	if err != nil {
		return err
	}
	j := job.Job{
		Effect: name,
		Inputs: inputs,
		Output: c.output,
		Params: named,
	}
	if c.size != "" {
		size, err := parseSize(c.size)
		if err != nil {
			return err
		}
		j.Size = &size
	}
	if err := j.Validate(); err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}

	fmt.Printf("Applying %s to %d inputs...\n", name, len(inputs))
	r := job.NewRunner(1, c.logger(), opts)
	if err := r.Run(ctx, []job.Job{j}); err != nil {
		return err
	}
	fmt.Printf("Wrote %q.\n", c.output)
	return nil
}

type runCmd struct {
	logFlags
	outputFlags
	workers int
}

func (c *runCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "run",
		Usage: "JOBFILE",
		Desc:  "Run every job in a YAML job file.",
	}
}

func (c *runCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.logFlags.register(fl)
	c.outputFlags.register(fl)
	fl.IntVarP(&c.workers, "jobs", "j", 0, "jobs to run at once; overrides the job file")
}

func (c *runCmd) Run(fl *pflag.FlagSet) {
	if fl.NArg() != 1 {
		fl.Usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	check(c.run(ctx, fl.Arg(0)))
}

func (c *runCmd) run(ctx context.Context, path string) error {
	f, err := job.Load(path)
	if err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	workers := f.Workers
	if c.workers > 0 {
		workers = c.workers
	}

	fmt.Printf("Running %d jobs from %q...\n", len(f.Jobs), path)
	r := job.NewRunner(workers, c.logger(), opts)
	err = r.Run(ctx, f.Jobs)
	bypassed := 0
	for _, o := range r.Outcomes {
		if o.Bypassed {
			bypassed++
		}
	}
	fmt.Printf("Finished %d of %d jobs (%d with missing inputs).\n", len(r.Outcomes), len(f.Jobs), bypassed)
	return err
}
