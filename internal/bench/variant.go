package bench

import (
	"fmt"

	"render-bench/internal/lighting"
	"render-bench/internal/scene"
	"render-bench/internal/texture"
)

// Kind identifies which suite a variant belongs to.
type Kind int

const (
	KindBasic Kind = iota
	KindLighting
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindLighting:
		return "lighting"
	case KindTexture:
		return "texture"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Variant is the part of a configuration that is not the triangle count.
// Only the field matching Kind is meaningful.
type Variant struct {
	Kind    Kind
	Light   lighting.Preset
	Texture texture.Size
}

// Basic is the single variant of the plain triangle suite.
func Basic() Variant { return Variant{Kind: KindBasic} }

// Lit is a lighting suite variant.
func Lit(p lighting.Preset) Variant { return Variant{Kind: KindLighting, Light: p} }

// Textured is a texture suite variant. texture.None draws plain red triangles.
func Textured(s texture.Size) Variant { return Variant{Kind: KindTexture, Texture: s} }

func (v Variant) String() string {
	switch v.Kind {
	case KindLighting:
		return "light=" + v.Light.String()
	case KindTexture:
		return "texture=" + v.Texture.String()
	}
	return v.Kind.String()
}

var solidRed = [3]float32{1, 0, 0}

// Style maps the variant to how its primitives are shaded.
func (v Variant) Style() scene.Style {
	switch v.Kind {
	case KindLighting:
		return scene.Style{Fill: scene.FillMaterial}
	case KindTexture:
		if v.Texture == texture.None {
			return scene.Style{Fill: scene.FillSolid, Color: solidRed}
		}
		return scene.Style{Fill: scene.FillTexture, Texture: v.Texture}
	}
	return scene.Style{Fill: scene.FillRandom}
}

// label fills the variant discriminator fields of a result.
func (v Variant) label(r *Result) {
	switch v.Kind {
	case KindLighting:
		r.LightType = v.Light.String()
	case KindTexture:
		use := v.Texture != texture.None
		r.UseTexture = &use
		r.TextureSize = v.Texture.String()
	}
}
