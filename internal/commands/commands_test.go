package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"render-bench/internal/benchconfig"
	"render-bench/internal/telemetry"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := cli.NewApp()
	app.Name = "render-bench"
	app.Writer = &buf
	app.ErrWriter = &buf
	app.Flags = GlobalFlags()
	app.Commands = []cli.Command{Config(), Textures()}
	err := app.Run(append([]string{"render-bench"}, args...))
	return buf.String(), err
}

func TestConfigAppliesFlags(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	out, err := runApp(t, "--config", missing, "config",
		"--counts", "3", "--counts", "4",
		"--duration", "2",
		"--lights", "spot",
		"--width", "640")
	require.NoError(t, err)

	var cfg benchconfig.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, []int{3, 4}, cfg.Basic.Counts)
	assert.Equal(t, []int{3, 4}, cfg.Texture.Counts)
	assert.Equal(t, 2.0, cfg.DurationSeconds)
	assert.Equal(t, []string{"spot"}, cfg.Lighting.Presets)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestConfigWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "bench.toml")
	_, err := runApp(t, "--config", path, "config", "--write", "--seed", "9")
	require.NoError(t, err)

	cfg, err := benchconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestConfigRejectsUnknownPreset(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := runApp(t, "--config", missing, "config", "--lights", "disco")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco")
}

func TestTexturesDump(t *testing.T) {
	dir := t.TempDir()
	out, err := runApp(t, "--config", filepath.Join(dir, "absent.yaml"), "textures", "--dump", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, filepath.Join(dir, "checker_64x64.png"), lines[0])
	assert.FileExists(t, filepath.Join(dir, "checker_256x256.png"))
}

func TestPrintHost(t *testing.T) {
	freq := 2400.0
	var buf bytes.Buffer
	printHost(&buf, telemetry.HostInfo{
		PhysicalCores: 6,
		LogicalCores:  12,
		CPUFreqMHz:    &freq,
		RAMGiB:        16,
		GPUAvailable:  true,
		GPUCount:      1,
		GPUs:          []telemetry.GPUInfo{{Name: "RTX 3060", MemoryTotal: 12288, Driver: "535.54"}},
	}, 8)
	out := buf.String()
	assert.Contains(t, out, "2400 MHz")
	assert.Contains(t, out, "16 GiB")
	assert.Contains(t, out, "8.0 GiB")
	assert.Contains(t, out, "RTX 3060, 12 GiB, driver 535.54")
}

func TestPrintHostUnknownFrequency(t *testing.T) {
	var buf bytes.Buffer
	printHost(&buf, telemetry.HostInfo{GPUs: []telemetry.GPUInfo{}}, 0)
	assert.Contains(t, buf.String(), "unknown")
}
