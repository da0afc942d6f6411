// Package job describes batches of effect invocations in YAML and runs
// them concurrently.
package job

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/erinpentecost/wolffx/internal/effect"
	"github.com/erinpentecost/wolffx/internal/param"
)

var (
	ErrUnknownParam = errors.New("unknown parameter")
	ErrInvalidJob   = errors.New("invalid job")
)

// Size overrides the output canvas size.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Job is one effect invocation.
type Job struct {
	Name   string `yaml:"name"`
	Effect string `yaml:"effect"`
	// Inputs are image paths by port. An empty path leaves the port
	// unbound.
	Inputs []string           `yaml:"inputs"`
	Output string             `yaml:"output"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Size   *Size              `yaml:"size,omitempty"`
}

// Label is the name shown in logs and errors.
func (j Job) Label() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Output
}

// File is a job file.
type File struct {
	// Workers bounds how many jobs run at once. Zero lets the runner pick.
	Workers int   `yaml:"workers,omitempty"`
	Jobs    []Job `yaml:"jobs"`
}

// Parse decodes a job file. Unknown fields are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	f := &File{}
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return nil, fmt.Errorf("parse job file: %w", err)
	}
	for i, j := range f.Jobs {
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
	}
	return f, nil
}

// Load parses the job file at path and resolves relative image paths
// against its directory.
func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()
	f, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	f.Resolve(filepath.Dir(path))
	return f, nil
}

// Resolve rewrites relative paths to be relative to dir.
func (f *File) Resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range f.Jobs {
		j := &f.Jobs[i]
		for k, in := range j.Inputs {
			j.Inputs[k] = abs(in)
		}
		j.Output = abs(j.Output)
	}
}

// Encode writes f as YAML.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode job file: %w", err)
	}
	return enc.Close()
}

// Validate checks j against the effect it names.
func (j Job) Validate() error {
	e, err := effect.Lookup(j.Effect)
	if err != nil {
		return err
	}
	if j.Output == "" {
		return fmt.Errorf("%q: no output: %w", j.Label(), ErrInvalidJob)
	}
	if len(j.Inputs) > e.PortCount() {
		return fmt.Errorf("%q: %d inputs for %d ports of %s: %w", j.Label(), len(j.Inputs), e.PortCount(), e.Name(), ErrInvalidJob)
	}
	if j.Size != nil && (j.Size.Width <= 0 || j.Size.Height <= 0) {
		return fmt.Errorf("%q: size %dx%d: %w", j.Label(), j.Size.Width, j.Size.Height, ErrInvalidJob)
	}
	if _, err := Values(e, j.Params); err != nil {
		return fmt.Errorf("%q: %w", j.Label(), err)
	}
	return nil
}

// Values turns named parameters into the value vector of e. Parameters
// not named keep their defaults.
func Values(e effect.Effect, named map[string]float64) (param.Values, error) {
	d := e.Descriptor()
	values := e.Defaults()
	// Sorted so the first unknown name reported is stable.
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		i, ok := param.Index(d.Params, name)
		if !ok {
			return nil, fmt.Errorf("%s has no %q: %w", e.Name(), name, ErrUnknownParam)
		}
		values[i] = named[name]
	}
	return values, nil
}
