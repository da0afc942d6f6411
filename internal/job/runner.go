package job

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/erinpentecost/wolffx/internal/effect"
	"github.com/erinpentecost/wolffx/internal/port"
	"github.com/erinpentecost/wolffx/internal/raster"
	"github.com/erinpentecost/wolffx/internal/rasterio"
)

// Outcome records what happened to one job.
type Outcome struct {
	Job      Job
	State    effect.State
	Bypassed bool
}

// Runner executes jobs. Every job gets its own buffers, so jobs never
// share pixels.
type Runner struct {
	// Workers bounds concurrency. Zero means GOMAXPROCS.
	Workers int
	Log     *logrus.Logger
	// Load and Save default to rasterio.
	Load func(path string) (*raster.Image, error)
	Save func(path string, img *raster.Image) error

	mux      sync.Mutex
	Outcomes []Outcome
}

func NewRunner(workers int, log *logrus.Logger, opts rasterio.Options) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		Workers: workers,
		Log:     log,
		Load:    rasterio.Load,
		Save: func(path string, img *raster.Image) error {
			return rasterio.Save(path, img, opts)
		},
	}
}

// Run executes jobs with bounded concurrency and stops at the first
// failure. Outcomes is reset and then holds one entry per job started.
func (r *Runner) Run(ctx context.Context, jobs []Job) error {
	r.mux.Lock()
	r.Outcomes = nil
	r.mux.Unlock()

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.Execute(j)
			r.mux.Lock()
			defer r.mux.Unlock()
			r.Outcomes = append(r.Outcomes, out)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("run jobs: %w", err)
	}
	return nil
}

// Execute runs one job: load its inputs, compute, save the output.
func (r *Runner) Execute(j Job) (Outcome, error) {
	out := Outcome{Job: j, State: effect.Failed}
	log := r.logger().WithFields(logrus.Fields{
		"job":    j.Label(),
		"effect": j.Effect,
	})

	e, err := effect.Lookup(j.Effect)
	if err != nil {
		return out, fmt.Errorf("job %q: %w", j.Label(), err)
	}
	values, err := Values(e, j.Params)
	if err != nil {
		return out, fmt.Errorf("job %q: %w", j.Label(), err)
	}

	images := make([]*raster.Image, len(j.Inputs))
	for i, path := range j.Inputs {
		if path == "" {
			continue
		}
		img, err := r.load(path)
		if err != nil {
			return out, fmt.Errorf("job %q: load %s: %w", j.Label(), e.PortName(i), err)
		}
		images[i] = img
	}
	args := port.NewArgs(images...)
	if j.Size != nil {
		args.Size = image.Pt(j.Size.Width, j.Size.Height)
	}

	log.Debug("computing")
	res, err := e.Compute(args, values)
	out.State = res.State
	out.Bypassed = res.Bypassed
	if err != nil {
		return out, fmt.Errorf("job %q: %w", j.Label(), err)
	}
	if res.Bypassed {
		if res.Image == nil || res.Image.Width == 0 || res.Image.Height == 0 {
			log.Warn("required input missing and no size set, nothing to write")
			return out, nil
		}
		log.Warn("required input missing, writing blank output")
	}
	if err := r.save(j.Output, res.Image); err != nil {
		out.State = effect.Failed
		return out, fmt.Errorf("job %q: save %q: %w", j.Label(), j.Output, err)
	}
	log.WithField("output", j.Output).Info("done")
	return out, nil
}

func (r *Runner) load(path string) (*raster.Image, error) {
	if r.Load == nil {
		return rasterio.Load(path)
	}
	return r.Load(path)
}

func (r *Runner) save(path string, img *raster.Image) error {
	if r.Save == nil {
		return rasterio.Save(path, img, rasterio.Options{})
	}
	return r.Save(path, img)
}

func (r *Runner) logger() *logrus.Logger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}
