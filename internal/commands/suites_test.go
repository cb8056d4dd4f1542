package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render-bench/internal/bench"
	"render-bench/internal/benchconfig"
	"render-bench/internal/report"
	"render-bench/internal/scene"
	"render-bench/internal/telemetry"
)

type stubWindow struct {
	quitAfter int // ShouldQuit returns true on this call number; 0 never
	polls     int
	frames    int
	closed    int
}

func (w *stubWindow) Configure(bench.Variant, int) error { return nil }

func (w *stubWindow) ShouldQuit() bool {
	w.polls++
	return w.quitAfter > 0 && w.polls >= w.quitAfter
}

func (w *stubWindow) Render([]scene.Primitive) { w.frames++ }

func (w *stubWindow) Close() { w.closed++ }

type stubHost struct {
	hostErr error
}

func (stubHost) Sample(context.Context) telemetry.Sample {
	return telemetry.Sample{CPUPercent: 12}
}

func (h stubHost) Host(context.Context) (telemetry.HostInfo, error) {
	return telemetry.HostInfo{PhysicalCores: 4, LogicalCores: 8, RAMGiB: 16}, h.hostErr
}

func stubRunner(win *stubWindow, host stubHost, out *bytes.Buffer) (runner, *int) {
	opened := 0
	return runner{
		open: func(benchconfig.Config) (window, error) {
			opened++
			return win, nil
		},
		sampler: func(context.Context) hostSampler { return host },
		out:     out,
	}, &opened
}

func shortConfig(t *testing.T) benchconfig.Config {
	t.Helper()
	cfg := benchconfig.Default()
	cfg.OutputDir = t.TempDir()
	cfg.DurationSeconds = 0.01
	cfg.Seed = 3
	cfg.Basic.Counts = []int{1, 2}
	cfg.Lighting.Counts = []int{1}
	cfg.Lighting.Presets = []string{"none"}
	cfg.Texture.Counts = []int{1}
	cfg.Texture.Sizes = []string{"none"}
	return cfg
}

func TestRunnerWritesEverySuite(t *testing.T) {
	cfg := shortConfig(t)
	win := &stubWindow{}
	var out bytes.Buffer
	r, opened := stubRunner(win, stubHost{}, &out)

	require.NoError(t, r.run(context.Background(), cfg, basicSuite, lightingSuite, textureSuite))
	assert.Equal(t, 1, *opened)
	assert.Equal(t, 1, win.closed)
	assert.NotZero(t, win.frames)

	basic, err := report.Read(filepath.Join(cfg.OutputDir, report.BasicFile))
	require.NoError(t, err)
	assert.False(t, basic.Cancelled)
	require.Len(t, basic.Results, 2)
	assert.Equal(t, 1, basic.Results[0].TriangleCount)
	assert.Equal(t, 2, basic.Results[1].TriangleCount)
	assert.Equal(t, 4, basic.SystemInfo.PhysicalCores)

	for _, name := range []string{report.LightingFile, report.TextureFile} {
		rep, err := report.Read(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		assert.False(t, rep.Cancelled, name)
		assert.Len(t, rep.Results, 1, name)
	}
	assert.NotEmpty(t, out.String())
}

func TestRunnerStopsAfterWindowClose(t *testing.T) {
	cfg := shortConfig(t)
	win := &stubWindow{quitAfter: 1}
	var out bytes.Buffer
	r, _ := stubRunner(win, stubHost{}, &out)

	require.NoError(t, r.run(context.Background(), cfg, basicSuite, lightingSuite, textureSuite))
	assert.Equal(t, 1, win.closed)
	assert.Zero(t, win.frames)

	basic, err := report.Read(filepath.Join(cfg.OutputDir, report.BasicFile))
	require.NoError(t, err)
	assert.True(t, basic.Cancelled)
	assert.Empty(t, basic.Results)

	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, report.LightingFile))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, report.TextureFile))
}

func TestRunnerCancelledContextSkipsReport(t *testing.T) {
	cfg := shortConfig(t)
	win := &stubWindow{}
	var out bytes.Buffer
	r, _ := stubRunner(win, stubHost{}, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.run(ctx, cfg, basicSuite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, win.closed)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, report.BasicFile))
}

func TestRunnerHostFailureOpensNoWindow(t *testing.T) {
	cfg := shortConfig(t)
	win := &stubWindow{}
	var out bytes.Buffer
	r, opened := stubRunner(win, stubHost{hostErr: errors.New("no procfs")}, &out)

	err := r.run(context.Background(), cfg, basicSuite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading host information")
	assert.Zero(t, *opened)
	assert.Zero(t, win.closed)
}

func TestRunnerOpenFailure(t *testing.T) {
	cfg := shortConfig(t)
	var out bytes.Buffer
	r, _ := stubRunner(&stubWindow{}, stubHost{}, &out)
	r.open = func(benchconfig.Config) (window, error) {
		return nil, errors.New("no display")
	}

	err := r.run(context.Background(), cfg, basicSuite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, report.BasicFile))
}
