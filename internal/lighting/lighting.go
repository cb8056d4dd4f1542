package lighting

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Preset is one of the fixed lighting setups the lighting suite cycles through.
type Preset int

const (
	None Preset = iota
	Omnidirectional
	Spot
	Multiple
)

// Presets lists every preset in suite order.
var Presets = []Preset{None, Omnidirectional, Spot, Multiple}

func (p Preset) String() string {
	switch p {
	case None:
		return "none"
	case Omnidirectional:
		return "omnidirectional"
	case Spot:
		return "spot"
	case Multiple:
		return "multiple"
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// Parse returns the preset for a label such as "spot". Matching ignores case and surrounding space.
func Parse(label string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "none":
		return None, nil
	case "omnidirectional", "omni":
		return Omnidirectional, nil
	case "spot":
		return Spot, nil
	case "multiple":
		return Multiple, nil
	}
	return None, errors.Errorf("lighting: unknown preset %q", label)
}

// Light is a positional light. Colours are RGBA in 0..1.
// SpotCutoff is in degrees; zero means the light is omnidirectional.
type Light struct {
	Position      [3]float32
	Ambient       [4]float32
	Diffuse       [4]float32
	Specular      [4]float32
	SpotDirection [3]float32
	SpotCutoff    float32
	SpotExponent  float32
}

// IsSpot reports whether the light has a cone.
func (l Light) IsSpot() bool {
	return l.SpotCutoff > 0 && l.SpotCutoff < 180
}

// Material is the surface response shared by every lit triangle.
type Material struct {
	Ambient   [4]float32
	Diffuse   [4]float32
	Specular  [4]float32
	Shininess float32
}

// DefaultMaterial is the reddish, fairly glossy material applied to lit triangles.
var DefaultMaterial = Material{
	Ambient:   [4]float32{0.2, 0.2, 0.2, 1},
	Diffuse:   [4]float32{0.8, 0.3, 0.3, 1},
	Specular:  [4]float32{1, 1, 1, 1},
	Shininess: 50,
}

// MaxLights is the number of light slots the lit shader exposes.
const MaxLights = 3

var (
	white      = [4]float32{1, 1, 1, 1}
	dimAmbient = [4]float32{0.2, 0.2, 0.2, 1}
	noAmbient  = [4]float32{0, 0, 0, 1}
	noSpecular = [4]float32{0, 0, 0, 1}
)

// Lights returns the lights enabled by the preset. None returns nil: rendering is unlit.
func (p Preset) Lights() []Light {
	switch p {
	case Omnidirectional:
		return []Light{{
			Position: [3]float32{0, 5, 5},
			Ambient:  dimAmbient,
			Diffuse:  white,
			Specular: white,
		}}
	case Spot:
		return []Light{{
			Position:      [3]float32{0, 5, 5},
			Ambient:       dimAmbient,
			Diffuse:       white,
			Specular:      white,
			SpotDirection: [3]float32{0, -1, -1},
			SpotCutoff:    30,
			SpotExponent:  2,
		}}
	case Multiple:
		return []Light{
			{Position: [3]float32{5, 5, 5}, Ambient: noAmbient, Diffuse: [4]float32{1, 0, 0, 1}, Specular: noSpecular},
			{Position: [3]float32{-5, 5, 5}, Ambient: noAmbient, Diffuse: [4]float32{0, 1, 0, 1}, Specular: noSpecular},
			{Position: [3]float32{0, -5, 5}, Ambient: noAmbient, Diffuse: [4]float32{0, 0, 1, 1}, Specular: noSpecular},
		}
	}
	return nil
}

// Lit reports whether the preset enables lighting at all.
func (p Preset) Lit() bool {
	return len(p.Lights()) > 0
}
