package job

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/erinpentecost/wolffx/internal/effect"
	"github.com/erinpentecost/wolffx/internal/raster"
	"github.com/erinpentecost/wolffx/internal/rasterio"
)

const sampleFile = `
workers: 2
jobs:
  - name: soften
    effect: BlurChannels
    inputs: [in.png]
    output: out/soft.png
    params:
      Blur_Amount_R: 3
      Blur_Amount_B: 1.5
  - effect: selector
    inputs: ["", b.png]
    output: /abs/pick.dds
    params:
      Index: 1
    size: {width: 64, height: 32}
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)
	require.Equal(t, 2, f.Workers)
	require.Len(t, f.Jobs, 2)

	soften := f.Jobs[0]
	require.Equal(t, "soften", soften.Label())
	require.Equal(t, 3.0, soften.Params["Blur_Amount_R"])

	pick := f.Jobs[1]
	require.Equal(t, "/abs/pick.dds", pick.Label())
	require.Equal(t, &Size{Width: 64, Height: 32}, pick.Size)

	f.Resolve("/jobs")
	require.Equal(t, filepath.Join("/jobs", "in.png"), f.Jobs[0].Inputs[0])
	require.Equal(t, filepath.Join("/jobs", "out/soft.png"), f.Jobs[0].Output)
	require.Equal(t, "", f.Jobs[1].Inputs[0])
	require.Equal(t, "/abs/pick.dds", f.Jobs[1].Output)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, f.Jobs)
}

func TestParseRejects(t *testing.T) {
	for _, test := range []struct {
		name string
		yaml string
		err  error
	}{
		{"unknown field", "jobs:\n  - effect: Slide\n    output: a.png\n    colour: red\n", nil},
		{"unknown effect", "jobs:\n  - effect: Sharpen\n    output: a.png\n", effect.ErrUnknownEffect},
		{"unknown param", "jobs:\n  - effect: Slide\n    output: a.png\n    params: {Z: 1}\n", ErrUnknownParam},
		{"no output", "jobs:\n  - effect: Slide\n", ErrInvalidJob},
		{"too many inputs", "jobs:\n  - effect: Slide\n    inputs: [a.png, b.png]\n    output: c.png\n", ErrInvalidJob},
		{"bad size", "jobs:\n  - effect: Slide\n    output: c.png\n    size: {width: 0, height: 4}\n", ErrInvalidJob},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.yaml))
			require.Error(t, err)
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
			}
		})
	}
}

func TestEncodeParses(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.Encode(&buf))
	again, err := Parse(&buf)
	require.NoError(t, err)
	require.Equal(t, f, again)
}

func TestValues(t *testing.T) {
	e, err := effect.Lookup("LumaThresholdTwo")
	require.NoError(t, err)
	v, err := Values(e, map[string]float64{"Invert": 1, "Threshold_Min": 20})
	require.NoError(t, err)
	require.Equal(t, []float64{20, 255, 1, 0}, []float64(v))

	_, err = Values(e, map[string]float64{"invert": 1})
	require.ErrorIs(t, err, ErrUnknownParam)
}

// memStore is an in-memory image store for runner tests.
type memStore struct {
	mux    sync.Mutex
	images map[string]*raster.Image
}

func newMemStore() *memStore {
	return &memStore{images: map[string]*raster.Image{}}
}

func (m *memStore) load(path string) (*raster.Image, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	img, ok := m.images[path]
	if !ok {
		return nil, fmt.Errorf("open %q: %w", path, os.ErrNotExist)
	}
	return img, nil
}

func (m *memStore) save(path string, img *raster.Image) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.images[path] = img
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunnerRunsEveryJob(t *testing.T) {
	store := newMemStore()
	src := raster.New(8, 8)
	src.Fill([raster.Channels]uint8{10, 20, 30, 255})
	store.images["src"] = src

	var jobs []Job
	for i := range 20 {
		jobs = append(jobs, Job{
			Effect: "OneChannel",
			Inputs: []string{"src"},
			Output: fmt.Sprintf("out%d", i),
			Params: map[string]float64{"Channel": float64(i%4 + 1)},
		})
	}
	r := &Runner{Workers: 3, Log: quietLogger(), Load: store.load, Save: store.save}
	require.NoError(t, r.Run(context.Background(), jobs))
	require.Len(t, r.Outcomes, 20)
	for _, o := range r.Outcomes {
		require.Equal(t, effect.Done, o.State)
	}

	want := []uint8{30, 20, 10, 255}
	for i := range 20 {
		out := store.images[fmt.Sprintf("out%d", i)]
		require.NotNil(t, out)
		require.Equal(t, want[i%4], out.At(3, 3)[raster.G])
	}
	require.Equal(t, [raster.Channels]uint8{10, 20, 30, 255}, src.At(0, 0))
}

func TestRunnerBypass(t *testing.T) {
	store := newMemStore()
	r := &Runner{Log: quietLogger(), Load: store.load, Save: store.save}
	out, err := r.Execute(Job{
		Effect: "Slide",
		Inputs: []string{""},
		Output: "blank",
		Size:   &Size{Width: 4, Height: 2},
	})
	require.NoError(t, err)
	require.True(t, out.Bypassed)
	require.True(t, raster.New(4, 2).Equal(store.images["blank"]))
}

func TestRunnerStopsOnFailure(t *testing.T) {
	store := newMemStore()
	r := &Runner{Workers: 1, Log: quietLogger(), Load: store.load, Save: store.save}
	err := r.Run(context.Background(), []Job{{
		Name:   "missing",
		Effect: "Slide",
		Inputs: []string{"nowhere"},
		Output: "x",
	}})
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), `"missing"`)
}

func TestRunnerSelectorOutOfRange(t *testing.T) {
	store := newMemStore()
	store.images["a"] = raster.New(2, 2)
	r := &Runner{Log: quietLogger(), Load: store.load, Save: store.save}
	out, err := r.Execute(Job{
		Effect: "Selector",
		Inputs: []string{"a"},
		Output: "x",
		Params: map[string]float64{"Index": 4},
	})
	require.ErrorIs(t, err, effect.ErrIndexOutOfRange)
	require.Equal(t, effect.Failed, out.State)
	require.NotContains(t, store.images, "x")
}

func TestRunnerCanceled(t *testing.T) {
	store := newMemStore()
	store.images["a"] = raster.New(2, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Log: quietLogger(), Load: store.load, Save: store.save}
	err := r.Run(ctx, []Job{{Effect: "Slide", Inputs: []string{"a"}, Output: "x"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadAndRunOnDisk(t *testing.T) {
	dir := t.TempDir()
	src := raster.New(6, 4)
	src.Fill([raster.Channels]uint8{0, 0, 255, 255})
	require.NoError(t, rasterio.Save(filepath.Join(dir, "in.png"), src, rasterio.Options{}))

	yml := "jobs:\n  - effect: OneChannel\n    inputs: [in.png]\n    output: red.dds\n"
	jobPath := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(yml), 0o644))

	f, err := Load(jobPath)
	require.NoError(t, err)
	r := NewRunner(f.Workers, quietLogger(), rasterio.Options{})
	require.NoError(t, r.Run(context.Background(), f.Jobs))

	got, err := rasterio.Load(filepath.Join(dir, "red.dds"))
	require.NoError(t, err)
	require.Equal(t, [raster.Channels]uint8{255, 255, 255, 255}, got.At(5, 3))
}

func TestRunnerBypassWithoutSize(t *testing.T) {
	store := newMemStore()
	r := &Runner{Log: quietLogger(), Load: store.load, Save: store.save}
	err := r.Run(context.Background(), []Job{{
		Effect: "BlurChannels",
		Inputs: []string{""},
		Output: "o.png",
	}})
	require.NoError(t, err)
	require.Len(t, r.Outcomes, 1)
	require.Equal(t, effect.Done, r.Outcomes[0].State)
	require.True(t, r.Outcomes[0].Bypassed)
	require.NotContains(t, store.images, "o.png")
}

func TestRunnerBypassWithoutSizeOnDisk(t *testing.T) {
	out := filepath.Join(t.TempDir(), "o.png")
	r := NewRunner(1, quietLogger(), rasterio.Options{})
	require.NoError(t, r.Run(context.Background(), []Job{{
		Effect: "Slide",
		Inputs: []string{""},
		Output: out,
	}}))
	_, err := os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunnerOutcomesResetPerRun(t *testing.T) {
	store := newMemStore()
	store.images["a"] = raster.New(2, 2)
	r := &Runner{Log: quietLogger(), Load: store.load, Save: store.save}
	jobs := []Job{
		{Effect: "Slide", Inputs: []string{"a"}, Output: "x"},
		{Effect: "Slide", Inputs: []string{"a"}, Output: "y"},
	}
	require.NoError(t, r.Run(context.Background(), jobs))
	require.NoError(t, r.Run(context.Background(), jobs))
	require.Len(t, r.Outcomes, 2)
}
