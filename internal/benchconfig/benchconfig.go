package benchconfig

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"render-bench/internal/bench"
	"render-bench/internal/lighting"
	"render-bench/internal/report"
	"render-bench/internal/texture"
)

// ConfigPath is the config file read when no --config flag is given, relative to the working directory.
const ConfigPath = "config/bench.yaml"

// Config holds everything a benchmark run needs besides the host itself.
// The same struct is read from YAML, TOML or JSON depending on the file extension.
type Config struct {
	Width           int     `json:"width" yaml:"width" toml:"width"`
	Height          int     `json:"height" yaml:"height" toml:"height"`
	Title           string  `json:"title" yaml:"title" toml:"title"`
	HUD             bool    `json:"hud" yaml:"hud" toml:"hud"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds" toml:"duration_seconds"`
	OutputDir       string  `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	// Seed drives primitive colours. Zero picks a time-based seed.
	Seed int64 `json:"seed" yaml:"seed" toml:"seed"`

	Basic    SuiteConfig    `json:"basic" yaml:"basic" toml:"basic"`
	Lighting LightingConfig `json:"lighting" yaml:"lighting" toml:"lighting"`
	Texture  TextureConfig  `json:"texture" yaml:"texture" toml:"texture"`
}

// SuiteConfig is the triangle-count sweep of the basic suite.
type SuiteConfig struct {
	Counts []int  `json:"counts" yaml:"counts" toml:"counts"`
	Output string `json:"output" yaml:"output" toml:"output"`
}

// LightingConfig adds the presets to sweep.
type LightingConfig struct {
	Counts  []int    `json:"counts" yaml:"counts" toml:"counts"`
	Presets []string `json:"presets" yaml:"presets" toml:"presets"`
	Output  string   `json:"output" yaml:"output" toml:"output"`
}

// TextureConfig adds the texture sizes to sweep.
type TextureConfig struct {
	Counts []int    `json:"counts" yaml:"counts" toml:"counts"`
	Sizes  []string `json:"sizes" yaml:"sizes" toml:"sizes"`
	Output string   `json:"output" yaml:"output" toml:"output"`
}

// Default returns the stock sweeps: an 800x600 window, 5 seconds per configuration,
// reports in the working directory.
func Default() Config {
	presets := make([]string, 0, len(lighting.Presets))
	for _, p := range lighting.Presets {
		presets = append(presets, p.String())
	}
	sizes := make([]string, 0, len(texture.Sizes))
	for _, s := range texture.Sizes {
		sizes = append(sizes, s.String())
	}
	return Config{
		Width:           800,
		Height:          600,
		Title:           "render-bench",
		DurationSeconds: bench.DefaultDuration.Seconds(),
		OutputDir:       ".",
		Basic: SuiteConfig{
			Counts: []int{1, 10, 50, 100, 200, 500, 1000, 2000},
			Output: report.BasicFile,
		},
		Lighting: LightingConfig{
			Counts:  []int{100, 500, 1000},
			Presets: presets,
			Output:  report.LightingFile,
		},
		Texture: TextureConfig{
			Counts: []int{100, 500, 1000, 2000},
			Sizes:  sizes,
			Output: report.TextureFile,
		},
	}
}

type format int

const (
	formatJSON format = iota
	formatYAML
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, errors.Errorf("unsupported config format %q", filepath.Ext(path))
}

// Load reads path on top of Default(), so a file only needs the keys it changes.
// A missing file returns Default() without creating one; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := formatOf(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case formatTOML:
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Default(), errors.Wrapf(err, "decoding config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path in the format its extension names, creating the directory if needed.
func Save(path string, cfg Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(cfg)
	case formatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	default:
		data, err = json.MarshalIndent(cfg, "", "\t")
	}
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing config %s", path)
}

// Override carries command-line values. Zero values leave the loaded config untouched.
type Override struct {
	Width           int
	Height          int
	HUD             bool
	DurationSeconds float64
	OutputDir       string
	Seed            int64

	// Counts replaces the triangle counts of every suite; Presets and Sizes
	// replace the lighting and texture sweeps.
	Counts  []int
	Presets []string
	Sizes   []string
}

// Apply merges o into c.
func (c *Config) Apply(o Override) error {
	if err := copier.CopyWithOption(c, &o, copier.Option{IgnoreEmpty: true}); err != nil {
		return errors.Wrap(err, "applying overrides")
	}
	if len(o.Counts) > 0 {
		c.Basic.Counts = append([]int(nil), o.Counts...)
		c.Lighting.Counts = append([]int(nil), o.Counts...)
		c.Texture.Counts = append([]int(nil), o.Counts...)
	}
	if len(o.Presets) > 0 {
		c.Lighting.Presets = append([]string(nil), o.Presets...)
	}
	if len(o.Sizes) > 0 {
		c.Texture.Sizes = append([]string(nil), o.Sizes...)
	}
	return nil
}

// MaxDurationSeconds is the longest per-configuration duration a time.Duration can hold.
const MaxDurationSeconds = float64(math.MaxInt64 / int64(time.Second))

// Duration is the per-configuration render time.
func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationSeconds * float64(time.Second))
}

// OutputPath resolves a report file name against the output directory, expanding a leading ~.
func (c Config) OutputPath(name string) (string, error) {
	dir, err := homedir.Expand(c.OutputDir)
	if err != nil {
		return "", errors.Wrapf(err, "expanding output dir %q", c.OutputDir)
	}
	return filepath.Join(dir, name), nil
}

// Validate reports the first setting that cannot produce a runnable plan.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if !(c.DurationSeconds > 0) {
		return errors.Errorf("duration %gs must be positive", c.DurationSeconds)
	}
	if c.DurationSeconds > MaxDurationSeconds {
		return errors.Errorf("duration %gs exceeds the maximum of %gs", c.DurationSeconds, MaxDurationSeconds)
	}
	if c.OutputDir == "" {
		return errors.New("output dir must not be empty")
	}
	for _, p := range []func() (bench.Plan, error){c.BasicPlan, c.LightingPlan, c.TexturePlan} {
		plan, err := p()
		if err != nil {
			return err
		}
		if err := plan.Validate(); err != nil {
			return err
		}
	}
	for _, out := range []string{c.Basic.Output, c.Lighting.Output, c.Texture.Output} {
		if out == "" {
			return errors.New("suite output file must not be empty")
		}
	}
	return nil
}

// BasicPlan is the random-colour sweep.
func (c Config) BasicPlan() (bench.Plan, error) {
	return bench.Plan{
		Name:     "basic",
		Counts:   c.Basic.Counts,
		Variants: []bench.Variant{bench.Basic()},
		Duration: c.Duration(),
	}, nil
}

// LightingPlan sweeps every configured preset over the lighting counts.
func (c Config) LightingPlan() (bench.Plan, error) {
	variants := make([]bench.Variant, 0, len(c.Lighting.Presets))
	for _, label := range c.Lighting.Presets {
		p, err := lighting.Parse(label)
		if err != nil {
			return bench.Plan{}, errors.Wrap(err, "lighting presets")
		}
		variants = append(variants, bench.Lit(p))
	}
	return bench.Plan{
		Name:     "lighting",
		Counts:   c.Lighting.Counts,
		Variants: variants,
		Duration: c.Duration(),
	}, nil
}

// TexturePlan sweeps every configured texture size over the texture counts.
func (c Config) TexturePlan() (bench.Plan, error) {
	variants := make([]bench.Variant, 0, len(c.Texture.Sizes))
	for _, label := range c.Texture.Sizes {
		s, err := texture.Parse(label)
		if err != nil {
			return bench.Plan{}, errors.Wrap(err, "texture sizes")
		}
		variants = append(variants, bench.Textured(s))
	}
	return bench.Plan{
		Name:     "texture",
		Counts:   c.Texture.Counts,
		Variants: variants,
		Duration: c.Duration(),
	}, nil
}
