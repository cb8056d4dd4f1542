package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"render-bench/internal/lighting"
	"render-bench/internal/texture"
)

const (
	// Spacing is the distance between neighbouring grid cells on every axis.
	Spacing = 2
	// RotationSpeed is the spin around Y in degrees per second.
	RotationSpeed = 50
	// DefaultSize is the uniform scale applied to every triangle.
	DefaultSize = 0.5
)

// Fill selects how a primitive is shaded.
type Fill int

const (
	// FillRandom gives every primitive its own random colour.
	FillRandom Fill = iota
	// FillSolid uses Style.Color for every primitive.
	FillSolid
	// FillMaterial shades with lighting.DefaultMaterial.
	FillMaterial
	// FillTexture maps Style.Texture onto the triangle.
	FillTexture
)

// Style describes the appearance applied to one population.
type Style struct {
	Fill    Fill
	Color   [3]float32
	Texture texture.Size
}

// Primitive is one triangle instance.
type Primitive struct {
	Position [3]float32
	Rotation float32 // degrees around Y
	Size     float32
	Fill     Fill
	Color    [3]float32
	Material lighting.Material
	Texture  texture.Size
}

// Scene owns the primitives of the configuration under test.
// Populate replaces the whole collection; nothing carries over between configurations.
type Scene struct {
	prims []Primitive
	rng   *rand.Rand
}

// New returns an empty scene. seed drives colour assignment.
func New(seed int64) *Scene {
	return &Scene{rng: rand.New(rand.NewSource(seed))}
}

// Primitives returns the current collection. Callers must not keep it across Populate.
func (s *Scene) Primitives() []Primitive {
	return s.prims
}

// Len is the number of primitives currently placed.
func (s *Scene) Len() int {
	return len(s.prims)
}

// Populate clears the scene and places n primitives with the given style.
// Grid side is recomputed for each insert from the running total, so early
// primitives of a large population sit on a smaller grid than later ones.
func (s *Scene) Populate(n int, style Style) {
	s.prims = s.prims[:0]
	if n <= 0 {
		return
	}
	if cap(s.prims) < n {
		s.prims = make([]Primitive, 0, n)
	}
	for i := 0; i < n; i++ {
		p := Primitive{
			Position: GridPosition(i, len(s.prims)+1),
			Size:     DefaultSize,
			Fill:     style.Fill,
		}
		switch style.Fill {
		case FillRandom:
			p.Color = [3]float32{s.rng.Float32(), s.rng.Float32(), s.rng.Float32()}
		case FillSolid:
			p.Color = style.Color
		case FillMaterial:
			p.Material = lighting.DefaultMaterial
		case FillTexture:
			p.Color = [3]float32{1, 1, 1}
			p.Texture = style.Texture
		}
		s.prims = append(s.prims, p)
	}
}

// GridPosition places index i on a square grid sized for total primitives:
// side = ceil(sqrt(total)), X and Y centred on the side, Z growing one layer per side².
func GridPosition(i, total int) [3]float32 {
	side := gridSide(total)
	half := float32(side) / 2
	x := (float32(i%side) - half) * Spacing
	y := (float32((i/side)%side) - half) * Spacing
	z := float32(i/(side*side)) * Spacing
	return [3]float32{x, y, z}
}

// gridSide is ceil(sqrt(total)), at least 1. The float32 estimate is corrected
// with integer checks because float32 loses precision above 2^24.
func gridSide(total int) int {
	side := int(math32.Ceil(math32.Sqrt(float32(total))))
	for side*side < total {
		side++
	}
	for side > 1 && (side-1)*(side-1) >= total {
		side--
	}
	return max(side, 1)
}

// Advance spins every primitive by RotationSpeed×dt degrees.
func (s *Scene) Advance(dt float32) {
	step := RotationSpeed * dt
	for i := range s.prims {
		s.prims[i].Rotation += step
	}
}
