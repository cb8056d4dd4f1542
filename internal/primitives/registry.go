package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"

	"render-bench/internal/lighting"
	"render-bench/internal/scene"
	"render-bench/internal/texture"
)

// Registry owns the GPU resources triangles are drawn with: the lit shader and
// one texture per checkerboard size. Resources are created on first use so that
// they are allocated after the window/OpenGL context exists.
type Registry struct {
	shader   rl.Shader
	locs     shaderLocs
	textures map[texture.Size]rl.Texture2D
	lights   []lighting.Light
	viewPos  [3]float32
}

// NewRegistry returns a registry with nothing loaded.
func NewRegistry() *Registry {
	return &Registry{textures: make(map[texture.Size]rl.Texture2D)}
}

// SetLights selects the lights used for FillMaterial primitives. An empty slice
// draws them unlit in white. viewPos is the camera position for specular highlights.
func (r *Registry) SetLights(lights []lighting.Light, viewPos [3]float32) {
	if len(lights) > lighting.MaxLights {
		lights = lights[:lighting.MaxLights]
	}
	r.lights = lights
	r.viewPos = viewPos
}

// EnsureTexture uploads the checkerboard for s if it is not resident yet.
// None needs no texture.
func (r *Registry) EnsureTexture(s texture.Size) error {
	if s == texture.None {
		return nil
	}
	if _, ok := r.textures[s]; ok {
		return nil
	}
	img, err := texture.Checkerboard(s)
	if err != nil {
		return err
	}
	b := img.Bounds()
	tex := rl.LoadTextureFromImage(rl.NewImage(texture.RGB(img), int32(b.Dx()), int32(b.Dy()), 1, rl.UncompressedR8g8b8))
	if !rl.IsTextureValid(tex) {
		return errors.Errorf("primitives: uploading %s texture failed", s)
	}
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	r.textures[s] = tex
	return nil
}

// Draw submits every primitive as one immediate-mode triangle.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Draw(prims []scene.Primitive) {
	if len(prims) == 0 {
		return
	}
	lit := len(r.lights) > 0 && prims[0].Fill == scene.FillMaterial && r.ensureShader()
	if lit {
		r.setLitShaderUniforms(prims[0].Material)
		rl.BeginShaderMode(r.shader)
	}
	for i := range prims {
		r.drawOne(&prims[i])
	}
	rl.SetTexture(0)
	if lit {
		rl.EndShaderMode()
	}
}

func (r *Registry) drawOne(p *scene.Primitive) {
	red, green, blue := float32(1), float32(1), float32(1)
	switch p.Fill {
	case scene.FillRandom, scene.FillSolid:
		red, green, blue = p.Color[0], p.Color[1], p.Color[2]
	case scene.FillTexture:
		if tex, ok := r.textures[p.Texture]; ok {
			rl.SetTexture(tex.ID)
		}
	}

	rl.PushMatrix()
	rl.Translatef(p.Position[0], p.Position[1], p.Position[2])
	rl.Rotatef(p.Rotation, 0, 1, 0)
	rl.Scalef(p.Size, p.Size, p.Size)

	rl.Begin(rl.Triangles)
	rl.Color3f(red, green, blue)
	rl.Normal3f(TriangleNormal[0], TriangleNormal[1], TriangleNormal[2])
	for v := range Triangle {
		rl.TexCoord2f(TriangleUV[v][0], TriangleUV[v][1])
		rl.Vertex3f(Triangle[v][0], Triangle[v][1], Triangle[v][2])
	}
	rl.End()

	rl.PopMatrix()
}

// DrawDemo draws the per-vertex coloured demo triangle rotated by angle degrees around Y.
func DrawDemo(angle float32) {
	rl.PushMatrix()
	rl.Rotatef(angle, 0, 1, 0)
	rl.Begin(rl.Triangles)
	for v := range Triangle {
		rl.Color3f(DemoColors[v][0], DemoColors[v][1], DemoColors[v][2])
		rl.Vertex3f(Triangle[v][0], Triangle[v][1], Triangle[v][2])
	}
	rl.End()
	rl.PopMatrix()
}

// Unload releases the shader and every uploaded texture.
func (r *Registry) Unload() {
	for s, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, s)
	}
	if r.shader.ID != 0 {
		rl.UnloadShader(r.shader)
		r.shader = rl.Shader{}
	}
}
